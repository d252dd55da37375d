package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/lawlink/internal/client/api"
	"github.com/dmitrijs2005/lawlink/internal/client/models"
)

// AdminLawyers lists every lawyer account with its verification status.
func (a *App) AdminLawyers(ctx context.Context) error {
	lawyers, err := a.client.AdminLawyers(ctx)
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}
	for _, l := range lawyers {
		fmt.Printf("#%d %s <%s> [%s] rating %.1f\n",
			l.ID, l.Username, l.Email, l.VerificationStatus, l.AverageRating)
	}
	return nil
}

// AdminClients lists every client account with its moderation state.
func (a *App) AdminClients(ctx context.Context) error {
	clients, err := a.client.AdminClients(ctx)
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}
	for _, c := range clients {
		state := "active"
		if !c.IsActive {
			state = "deactivated"
		}
		if c.IsFlagged {
			state += ", flagged: " + c.FlagReason
		}
		fmt.Printf("#%d %s <%s> [%s]\n", c.ID, c.Username, c.Email, state)
	}
	return nil
}

// VerifyLawyer changes a lawyer's verification status.
func (a *App) VerifyLawyer(ctx context.Context) error {
	id, err := GetID(a.reader, "Enter lawyer id", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	answer, err := getSimpleText(a.reader, "New status: Approved, Rejected, Suspended or Pending", os.Stdout)
	if err != nil {
		return err
	}

	var status models.VerificationStatus
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "approved":
		status = models.VerificationApproved
	case "rejected":
		status = models.VerificationRejected
	case "suspended":
		status = models.VerificationSuspended
	case "pending":
		status = models.VerificationPending
	default:
		fmt.Println("Unknown status:", answer)
		return fmt.Errorf("unknown verification status %q", answer)
	}

	if err := a.client.SetLawyerVerification(ctx, id, status); err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Printf("Lawyer #%d is now %s\n", id, status)
	return nil
}

// SetClientStatus activates or deactivates a client account.
func (a *App) SetClientStatus(ctx context.Context) error {
	id, err := GetID(a.reader, "Enter client id", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	answer, err := getSimpleText(a.reader, "Activate or deactivate?", os.Stdout)
	if err != nil {
		return err
	}

	var active bool
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "activate", "active":
		active = true
	case "deactivate", "deactivated":
		active = false
	default:
		fmt.Println("Please answer 'activate' or 'deactivate'")
		return fmt.Errorf("unknown status %q", answer)
	}

	if err := a.client.SetClientStatus(ctx, id, active); err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Printf("Client #%d updated\n", id)
	return nil
}

// FlagClient flags a client account for review, or clears an existing flag.
func (a *App) FlagClient(ctx context.Context) error {
	id, err := GetID(a.reader, "Enter client id", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	answer, err := getSimpleText(a.reader, "Flag or unflag?", os.Stdout)
	if err != nil {
		return err
	}

	p := api.FlagParams{}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "flag":
		p.IsFlagged = true
		if p.Reason, err = getSimpleText(a.reader, "Enter reason", os.Stdout); err != nil {
			return err
		}
	case "unflag":
		p.IsFlagged = false
	default:
		fmt.Println("Please answer 'flag' or 'unflag'")
		return fmt.Errorf("unknown answer %q", answer)
	}

	if err := a.client.FlagClient(ctx, id, p); err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Printf("Client #%d updated\n", id)
	return nil
}

// EditLawyer updates a lawyer's profile fields. Empty answers keep the
// current values server-side.
func (a *App) EditLawyer(ctx context.Context) error {
	id, err := GetID(a.reader, "Enter lawyer id", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	var p api.LawyerUpdateParams
	if p.Username, err = getSimpleText(a.reader, "Enter username", os.Stdout); err != nil {
		return err
	}
	if p.Email, err = getSimpleText(a.reader, "Enter email", os.Stdout); err != nil {
		return err
	}
	if p.PhoneNumber, err = getSimpleText(a.reader, "Enter phone number", os.Stdout); err != nil {
		return err
	}
	if p.Address, err = getSimpleText(a.reader, "Enter address", os.Stdout); err != nil {
		return err
	}
	if p.Specialization, err = getSimpleText(a.reader, "Enter specialization", os.Stdout); err != nil {
		return err
	}

	if err := a.client.UpdateLawyer(ctx, id, p); err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Printf("Lawyer #%d updated\n", id)
	return nil
}

// AdminInspect lists the enquiries and consultations attached to a lawyer
// or client account.
func (a *App) AdminInspect(ctx context.Context) error {
	target, err := getSimpleText(a.reader, "Inspect a lawyer or a client?", os.Stdout)
	if err != nil {
		return err
	}
	id, err := GetID(a.reader, "Enter account id", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	var (
		enquiries     []models.Enquiry
		consultations []models.Consultation
	)
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "lawyer":
		if enquiries, err = a.client.AdminLawyerEnquiries(ctx, id); err == nil {
			consultations, err = a.client.AdminLawyerConsultations(ctx, id)
		}
	case "client":
		if enquiries, err = a.client.AdminClientEnquiries(ctx, id); err == nil {
			consultations, err = a.client.AdminClientConsultations(ctx, id)
		}
	default:
		fmt.Println("Please answer 'lawyer' or 'client'")
		return fmt.Errorf("unknown target %q", target)
	}
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Printf("Enquiries (%d):\n", len(enquiries))
	for _, e := range enquiries {
		fmt.Printf("  #%d [%s] %s\n", e.ID, e.Status, e.CaseDescription)
	}
	fmt.Printf("Consultations (%d):\n", len(consultations))
	for _, con := range consultations {
		fmt.Printf("  #%d [%s] %s at %s\n", con.ID, con.Status, con.Title,
			con.ScheduledDateTime.Format("2006-01-02 15:04"))
	}
	return nil
}

// ActivityLogs prints the moderation audit trail, optionally filtered by
// action type and a search term.
func (a *App) ActivityLogs(ctx context.Context) error {
	actionType, err := getSimpleText(a.reader, "Filter by action type (empty for all)", os.Stdout)
	if err != nil {
		return err
	}
	search, err := getSimpleText(a.reader, "Search term (empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	logs, err := a.client.ActivityLogs(ctx, actionType, search)
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	if len(logs) == 0 {
		fmt.Println("No matching activity")
		return nil
	}
	for _, l := range logs {
		fmt.Printf("%s %s by %s on %s: %s\n",
			l.CreatedAt.Format("2006-01-02 15:04"), l.ActionType, l.AdminUsername, l.TargetName, l.Description)
	}
	return nil
}
