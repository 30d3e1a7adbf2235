package mailward

import (
	"fmt"

	"github.com/matcornic/hermes/v2"
	"github.com/pkg/errors"
)

// ConfirmationEmail renders the HTML and plain-text bodies of the double
// opt-in confirmation email. confirmURL appears verbatim in both parts so
// that clients stripping HTML still get a working link.
func ConfirmationEmail(product, productLink, confirmURL string) (html, text string, err error) {
	h := hermes.Hermes{
		Product: hermes.Product{
			Name: product,
			Link: productLink,
		},
	}

	email := hermes.Email{
		Body: hermes.Body{
			Intros: []string{
				fmt.Sprintf("Welcome to %s!", product),
			},
			Actions: []hermes.Action{
				{
					Instructions: "Click the button below to confirm your subscription:",
					Button: hermes.Button{
						Color: "#22BC66",
						Text:  "Confirm your subscription",
						Link:  confirmURL,
					},
				},
			},
			Outros: []string{
				"If the button does not work, open this link: " + confirmURL,
			},
		},
	}

	html, err = h.GenerateHTML(email)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate HTML body")
	}

	text, err = h.GeneratePlainText(email)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate text body")
	}

	return html, text, nil
}

// ThankYouEmail renders the bodies of the email sent once a subscription
// has been confirmed.
func ThankYouEmail(product, productLink string) (html, text string, err error) {
	h := hermes.Hermes{
		Product: hermes.Product{
			Name: product,
			Link: productLink,
		},
	}

	email := hermes.Email{
		Body: hermes.Body{
			Intros: []string{
				fmt.Sprintf("Thank you for subscribing to %s.", product),
			},
			Outros: []string{
				"You will receive updates to your inbox.",
			},
		},
	}

	html, err = h.GenerateHTML(email)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate HTML body")
	}

	text, err = h.GeneratePlainText(email)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate text body")
	}

	return html, text, nil
}
