package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/remote"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printConfirmation(w io.Writer, conf *remote.Confirmation, fallback string) {
	msg := fallback
	if conf != nil && conf.Message != "" {
		msg = conf.Message
	}
	if conf != nil && conf.ID != "" {
		fmt.Fprintf(w, "%s (id: %s)\n", msg, conf.ID)
		return
	}
	fmt.Fprintln(w, msg)
}

func printList(w io.Writer, items []string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
}

func printOrganizations(w io.Writer, orgs []models.Organization) error {
	if len(orgs) == 0 {
		fmt.Fprintln(w, "No organizations found.")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCITY\tCATEGORY\tEMAIL\tSTATUS")
	for _, o := range orgs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.Name, o.City, o.Category, o.Email, o.Status)
	}
	return tw.Flush()
}

func printRequirements(w io.Writer, reqs []models.Requirement) error {
	if len(reqs) == 0 {
		fmt.Fprintln(w, "No requirements found.")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tITEM\tQUANTITY\tNGO\tSTATUS\tCREATED\tREASON")
	for _, r := range reqs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Item, r.Quantity, r.NGOEmail, r.Status, formatTime(r.CreatedAt), r.RejectionReason)
	}
	return tw.Flush()
}

func printMessages(w io.Writer, msgs []models.Message) error {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No messages.")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "TIME\tFROM\tTO\tMESSAGE")
	for _, m := range msgs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", formatTime(m.CreatedAt), m.From, m.To, m.Body)
	}
	return tw.Flush()
}

func formatTime(ts models.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(time.DateTime)
}
