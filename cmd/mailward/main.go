package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"github.com/mailward/mailward"
	"github.com/mailward/mailward/bolt"
	"github.com/mailward/mailward/http"
	"github.com/mailward/mailward/mailjet"
	"github.com/mailward/mailward/rabbitmq"
	"github.com/mailward/mailward/smtp"
	"github.com/mailward/mailward/sqlite"
)

func main() {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}

	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("db.type", "bolt")
	viper.SetDefault("email.provider", "mailjet")
	viper.SetDefault("mailjet.timeout", 10*time.Second)
	viper.SetDefault("newsletter.subject.confirmation", "Please confirm your subscription")
	viper.SetDefault("newsletter.subject.thankyou", "Thank you for subscribing")

	var config *mailward.Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatal(err)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn: config.Sentry.DSN,
	}); err != nil {
		log.Fatalf("sentry.Init: %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	a := newApp(config)

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		cancel()
	}()

	if err := a.Run(ctx); err != nil {
		_ = a.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	<-ctx.Done()

	if err := a.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	config     *mailward.Config
	db         mailward.Database
	httpServer *http.Server
	queue      mailward.QueueService
	cron       *cron.Cron
}

func newApp(config *mailward.Config) *app {
	httpServer, err := http.NewServer()
	if err != nil {
		log.Fatalf("%+v\n", err)
	}

	a := &app{
		config:     config,
		httpServer: httpServer,
	}

	switch config.DB.Type {
	case "sqlite":
		a.db = sqlite.NewDB(config.DB.Path)
	default:
		a.db = bolt.NewDB(config.DB.Path)
	}

	return a
}

func (a *app) Run(ctx context.Context) error {
	if err := a.db.Open(); err != nil {
		return err
	}

	a.httpServer.Addr = a.config.HTTP.Addr
	a.httpServer.HMACSecret = a.config.Newsletter.HMAC.Secret

	if err := a.httpServer.Open(); err != nil {
		return err
	}

	switch db := a.db.(type) {
	case *sqlite.DB:
		a.httpServer.SubscriptionService = sqlite.NewSubscriptionService(db)
	case *bolt.DB:
		a.httpServer.SubscriptionService = bolt.NewSubscriptionService(db)
	}

	serverURL := a.httpServer.URL()
	switch a.config.Email.Provider {
	case "smtp":
		a.httpServer.EmailService = smtp.NewEmailService(a.config, serverURL)
	default:
		emailService, err := mailjet.NewEmailService(a.config, serverURL)
		if err != nil {
			// Misconfigured credentials or base URL, nothing to recover.
			log.Fatalf("mailjet: %v", err)
		}
		a.httpServer.EmailService = emailService
	}

	if a.config.Newsletter.TokenTTL > 0 && a.config.Newsletter.Cron.Spec != "" {
		if err := a.startTokenPurge(); err != nil {
			return err
		}
	}

	if a.config.AMQP.URL != "" {
		if err := a.startNewsletterConsumer(ctx); err != nil {
			return err
		}
	}

	return nil
}

// startTokenPurge schedules removal of pending subscriptions whose
// confirmation link was never visited within the configured TTL.
func (a *app) startTokenPurge() error {
	a.cron = cron.New()
	_, err := a.cron.AddFunc(a.config.Newsletter.Cron.Spec, func() {
		cutoff := time.Now().UTC().Add(-a.config.Newsletter.TokenTTL)
		n, err := a.httpServer.SubscriptionService.DeletePendingBefore(cutoff)
		if err != nil {
			sentry.CaptureException(err)
			return
		}
		if n > 0 {
			log.Printf("purged %d expired pending subscriptions", n)
		}
	})
	if err != nil {
		return err
	}
	a.cron.Start()

	return nil
}

// startNewsletterConsumer dispatches queued newsletter requests to all
// confirmed subscribers.
func (a *app) startNewsletterConsumer(ctx context.Context) error {
	queue, err := rabbitmq.NewQueueService(a.config.AMQP.URL)
	if err != nil {
		return err
	}
	a.queue = queue

	messages, err := queue.Consume(ctx, "newsletter")
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var req mailward.NewsletterRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sentry.CaptureException(err)
				continue
			}

			subscribers, err := a.httpServer.SubscriptionService.FindByStatus(mailward.StatusConfirmed)
			if err != nil {
				sentry.CaptureException(err)
				continue
			}

			a.httpServer.EmailService.SendNewsletter(subscribers, req.Subject, req.Body)
		}
	}()

	return nil
}

func (a *app) Close() error {
	if a.cron != nil {
		<-a.cron.Stop().Done()
	}

	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			return err
		}
	}

	if a.httpServer != nil {
		if err := a.httpServer.Close(); err != nil {
			return err
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return err
		}
	}

	return nil
}
