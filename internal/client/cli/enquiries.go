package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/lawlink/internal/client/api"
	"github.com/dmitrijs2005/lawlink/internal/client/models"
)

// Enquiries lists the incoming enquiries addressed to the signed-in lawyer.
func (a *App) Enquiries(ctx context.Context) error {
	enquiries, err := a.client.LawyerEnquiries(ctx, a.sessions.Current().Identity.ID)
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	if len(enquiries) == 0 {
		fmt.Println("No enquiries yet")
		return nil
	}
	for _, e := range enquiries {
		fmt.Printf("#%d [%s] from %s: %s\n", e.ID, e.Status, e.ClientName, e.CaseDescription)
	}
	return nil
}

// UpdateEnquiry accepts or rejects a pending enquiry by id.
func (a *App) UpdateEnquiry(ctx context.Context) error {
	id, err := GetID(a.reader, "Enter enquiry id", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	answer, err := getSimpleText(a.reader, "Accept or reject?", os.Stdout)
	if err != nil {
		return err
	}

	var status models.EnquiryStatus
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "accept", "accepted":
		status = models.EnquiryAccepted
	case "reject", "rejected":
		status = models.EnquiryRejected
	default:
		fmt.Println("Please answer 'accept' or 'reject'")
		return fmt.Errorf("unknown decision %q", answer)
	}

	if err := a.client.UpdateEnquiryStatus(ctx, id, status); err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	fmt.Printf("Enquiry #%d %s\n", id, strings.ToLower(string(status)))
	return nil
}
