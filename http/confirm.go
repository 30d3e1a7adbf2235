package http

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/mailward/mailward"
)

const thankyouMessage = "Thank you for subscribing to this newsletter."

// confirmHandler completes the double opt-in: a valid token moves the
// bound subscriber from pending to confirmed. Repeat visits with the
// same token succeed without touching the stored state again.
func (s *Server) confirmHandler(w http.ResponseWriter, r *http.Request) error {
	token := r.URL.Query().Get("subscription_token")
	if token == "" {
		return NewError(nil, http.StatusBadRequest, "The subscription_token query parameter is required.")
	}

	sub, err := s.SubscriptionService.FindByToken(token)
	if err != nil {
		if mailward.ErrorCode(err) == mailward.ErrNotFound {
			return NewError(err, http.StatusUnauthorized, "Unknown subscription token.")
		}
		return err
	}

	// Only the call that performed the transition sends the thank-you
	// email, so concurrent confirms with the same token cannot send it
	// twice.
	transitioned, err := s.SubscriptionService.Confirm(token)
	if err != nil {
		return err
	}

	if transitioned {
		hlog.FromRequest(r).Info().Msgf("Subscriber %s confirmed", sub.Email)
		if err := s.EmailService.SendThankYouEmail(sub.Email); err != nil {
			return err
		}
	}

	writeJSONResponse(w, http.StatusOK, &mailward.SubscriptionResponse{
		Message: thankyouMessage,
	})

	return nil
}
