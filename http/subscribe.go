package http

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/mailward/mailward"
)

const (
	confirmationMessage      = "A confirmation email has been sent to %s. Click the link in the email to confirm and activate your subscription. Check your spam folder if you don't see it within a couple of minutes."
	pendingMessage           = "Your subscription status is pending. Please click the confirmation link in your email."
	alreadySubscribedMessage = "You had been subscribed to this newsletter already."
)

func (s *Server) subscriptionsHandler(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return NewError(err, http.StatusBadRequest, "Cannot parse the form data.")
	}

	name := r.PostFormValue("name")
	email, err := mailward.ParseSubscriberEmail(r.PostFormValue("email"))
	if err != nil {
		return NewError(err, http.StatusBadRequest, mailward.ErrorMessage(err))
	}

	resp := new(mailward.SubscriptionResponse)
	logger := hlog.FromRequest(r)

	sub, err := s.SubscriptionService.FindByEmail(email.String())
	if err != nil {
		if mailward.ErrorCode(err) != mailward.ErrNotFound {
			return err
		}

		token := mailward.NewToken()

		logger.Info().Msg("Sending confirmation email")
		if err := s.EmailService.SendConfirmationEmail(email.String(), token); err != nil {
			return err
		}

		logger.Info().Msgf("Saving new subscriber %s into the database", email)
		if err := s.SubscriptionService.Insert(mailward.NewSubscription(email.String(), name, token)); err != nil {
			return err
		}

		resp.Message = fmt.Sprintf(confirmationMessage, email)
		writeJSONResponse(w, http.StatusOK, resp)
		return nil
	}

	logger.Info().Msgf("Found subscriber %s with status %s in the database", sub.Email, sub.Status)
	switch sub.Status {
	case mailward.StatusPendingConfirmation:
		resp.Message = pendingMessage
		writeJSONResponse(w, http.StatusOK, resp)
	case mailward.StatusConfirmed:
		resp.Message = alreadySubscribedMessage
		writeJSONResponse(w, http.StatusBadRequest, resp)
	default:
		token := mailward.NewToken()
		if err := s.EmailService.SendConfirmationEmail(email.String(), token); err != nil {
			return err
		}

		logger.Info().Msgf("Updating status to %s", mailward.StatusPendingConfirmation)
		if err := s.SubscriptionService.Update(email.String(), token); err != nil {
			return err
		}

		resp.Message = fmt.Sprintf(confirmationMessage, email)
		writeJSONResponse(w, http.StatusOK, resp)
	}

	return nil
}
