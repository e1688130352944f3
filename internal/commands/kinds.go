package commands

// Kind names one command; it is the unit of last-write-wins and of fencing
type Kind string

const (
	KindSearchOrganizations  Kind = "ngo/search"
	KindPendingOrganizations Kind = "ngo/listPending"
	KindApproveOrganization  Kind = "ngo/approve"

	KindPostRequirement          Kind = "requirement/post"
	KindSearchRequirements       Kind = "requirement/search"
	KindPendingRequirementsAdmin Kind = "requirement/listPendingForAdmin"
	KindPendingRequirementsNgo   Kind = "requirement/listPendingForNgo"
	KindApprovedRequirementsNgo  Kind = "requirement/listApprovedForNgo"
	KindRejectedRequirementsNgo  Kind = "requirement/listRejectedForNgo"
	KindApproveRequirement       Kind = "requirement/approve"
	KindRejectRequirement        Kind = "requirement/reject"
	KindUpdateRequirement        Kind = "requirement/update"

	KindSendMessage      Kind = "message/send"
	KindLoadConversation Kind = "message/loadConversation"
)

func (k Kind) String() string { return string(k) }
