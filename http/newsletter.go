package http

import (
	"encoding/json"
	"net/http"

	"github.com/mailward/mailward"
)

func (s *Server) sendNewsletterHandler(w http.ResponseWriter, r *http.Request) error {
	var req *mailward.NewsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return NewError(err, http.StatusBadRequest, "Cannot decode the request body.")
	}

	confirmedSubscribers, err := s.SubscriptionService.FindByStatus(mailward.StatusConfirmed)
	if err != nil {
		return err
	}

	s.EmailService.SendNewsletter(confirmedSubscribers, req.Subject, req.Body)

	writeJSONResponse(w, http.StatusAccepted, &mailward.SubscriptionResponse{
		Message: "Newsletter is being sent.",
	})

	return nil
}
