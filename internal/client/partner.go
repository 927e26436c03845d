package client

import (
	"net/http"

	"gsc/internal/api"
	"gsc/internal/log"
)

// Partner sends a partnership transition for one assignment: an
// outgoing request, an acceptance of an incoming one, or a
// cancellation. The server validates the transition against its own
// record of the pairing.
func (c *Client) Partner(user string, hw int, partner string, status api.PartnerRequestStatus) error {
	selected, err := c.selectUser(user)
	if err != nil {
		return err
	}

	change := api.UserChange{
		PartnerRequests: []api.PartnerRequest{{
			AssignmentNumber: hw,
			User:             partner,
			Status:           status,
		}},
	}
	if err := c.sendJSON(http.MethodPatch, c.userURI(selected), &change); err != nil {
		return err
	}

	switch status {
	case api.PartnerOutgoing:
		log.Info("Sent partner request to %s for hw%d.", partner, hw)
	case api.PartnerAccepted:
		log.Info("Accepted partner request from %s for hw%d.", partner, hw)
	case api.PartnerCanceled:
		log.Info("Canceled partner request with %s for hw%d.", partner, hw)
	}
	return nil
}
