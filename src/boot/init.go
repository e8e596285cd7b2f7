package boot

import (
	"context"
	"fmt"
	"log"
	"ticketpro/src/auth"
	"ticketpro/src/common"
	"ticketpro/src/config"
	"ticketpro/src/db"
	"ticketpro/src/lib"
	libaws "ticketpro/src/lib/aws"
	"ticketpro/src/models"
	"ticketpro/src/store"

	"github.com/go-co-op/gocron/v2"
	"github.com/redis/go-redis/v9"
)

// Services holds everything the HTTP layer needs. Build it with
// InitServices and release it with Close.
type Services struct {
	Config    *config.Config
	Store     store.TicketStore
	Sessions  auth.SessionStore
	Auth      *auth.Authenticator
	Booking   *common.BookingService
	Scanner   *common.Scanner
	Assets    *common.BarcodeAssets
	Scheduler gocron.Scheduler

	closers []func()
}

func InitStore(cfg *config.Config) (store.TicketStore, error) {
	var seed []models.Ticket
	if cfg.StoreSeed {
		seed = store.SeedTickets()
	}
	switch cfg.StoreDriver {
	case "", "memory":
		return store.NewMemoryStore(seed...), nil
	case "sqlite":
		gdb, err := db.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Printf("Error connecting to database: %s\n", err.Error())
			return nil, err
		}
		return store.NewGormStore(gdb, seed...)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func InitSessions(cfg *config.Config) (auth.SessionStore, *redis.Client, error) {
	switch cfg.SessionDriver {
	case "", "memory":
		return auth.NewMemorySessionStore(), nil, nil
	case "redis":
		rd := lib.GetRedisClient(cfg.RedisHost)
		if rd == nil {
			return nil, nil, fmt.Errorf("invalid redis host %q", cfg.RedisHost)
		}
		if err := lib.PingRedis(context.Background(), rd); err != nil {
			return nil, nil, err
		}
		return auth.NewRedisSessionStore(rd), rd, nil
	}
	return nil, nil, fmt.Errorf("unknown session driver %q", cfg.SessionDriver)
}

func (s *Services) initEvents(cfg *config.Config) (common.EventPublisher, error) {
	switch cfg.EventsDriver {
	case "", "log":
		return lib.LogPublisher{}, nil
	case "kafka":
		if _, err := lib.KafkaCreateTopics(cfg.KafkaBroker, cfg.KafkaTopic); err != nil {
			log.Printf("Error creating topic %s: %s\n", cfg.KafkaTopic, err.Error())
		}
		p, err := lib.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, p.Close)
		return p, nil
	case "sns":
		client, err := libaws.GetSNSClient(context.Background())
		if err != nil {
			return nil, err
		}
		return libaws.NewSNSPublisher(client, cfg.SNSTopicARN), nil
	case "sqs":
		client, err := libaws.GetSQSClient(context.Background())
		if err != nil {
			return nil, err
		}
		return libaws.NewSQSPublisher(context.Background(), client, cfg.SQSQueueName)
	}
	return nil, fmt.Errorf("unknown events driver %q", cfg.EventsDriver)
}

// initMailer returns nil when mail is not configured or fails to start.
func initMailer(cfg *config.Config) common.Mailer {
	switch cfg.MailDriver {
	case "ses":
		client, err := libaws.GetSESClient(context.Background())
		if err != nil {
			log.Printf("Error initializing mailer: %s\n", err.Error())
			return nil
		}
		return libaws.NewSESMailer(client)
	case "", "smtp":
		if cfg.SMTPHost == "" {
			return nil
		}
		mailer, err := lib.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		if err != nil {
			log.Printf("Error initializing mailer: %s\n", err.Error())
			return nil
		}
		return mailer
	}
	log.Printf("Unknown mail driver %q, mail disabled\n", cfg.MailDriver)
	return nil
}

// InitScheduler starts the scheduler that runs departure reminders.
func InitScheduler() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Error initializing Scheduler: %s\n", err.Error())
		return nil, err
	}
	sched.Start()
	log.Println("Jobs in queue:", len(sched.Jobs()))
	return sched, nil
}

func StopScheduler(sched gocron.Scheduler) {
	if sched == nil {
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
	}
}

// InitServices wires the stores and integrations selected by cfg.
// Optional integrations (mail, S3) stay off when not configured.
func InitServices(cfg *config.Config) (*Services, error) {
	svc := &Services{Config: cfg}

	ticketStore, err := InitStore(cfg)
	if err != nil {
		return nil, err
	}
	svc.Store = ticketStore

	sessions, rd, err := InitSessions(cfg)
	if err != nil {
		return nil, err
	}
	svc.Sessions = sessions
	svc.Auth = auth.NewAuthenticator(cfg.LoginDelay)

	events, err := svc.initEvents(cfg)
	if err != nil {
		svc.Close()
		return nil, err
	}

	sched, err := InitScheduler()
	if err != nil {
		svc.Close()
		return nil, err
	}
	svc.Scheduler = sched
	svc.closers = append(svc.closers, func() { StopScheduler(sched) })

	svc.Booking = &common.BookingService{
		Store:    ticketStore,
		Events:   events,
		MailFrom: cfg.MailFrom,
	}
	svc.Booking.Reminders = lib.NewReminderScheduler(sched, svc.Booking.SendReminder)

	if mailer := initMailer(cfg); mailer != nil {
		svc.Booking.Mailer = mailer
	}

	svc.Scanner = &common.Scanner{Store: ticketStore, Delay: cfg.ScanDelay}

	svc.Assets = &common.BarcodeAssets{Cache: rd, TempDir: cfg.TempDir}
	if cfg.S3AssetsBucket != "" {
		client, err := libaws.GetS3Client(context.Background())
		if err != nil {
			log.Printf("Error initializing S3 client: %s\n", err.Error())
		} else {
			svc.Assets.Assets = libaws.NewS3AssetStore(client, cfg.S3AssetsBucket)
		}
	}

	log.Printf("Services ready: env=%s store=%s sessions=%s events=%s\n",
		cfg.Env, cfg.StoreDriver, cfg.SessionDriver, cfg.EventsDriver)
	return svc, nil
}

// Close releases the integrations in reverse order of creation.
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
