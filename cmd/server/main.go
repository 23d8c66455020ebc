package main

import (
	"context"
	"flag"
	"log/syslog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/sirupsen/logrus"
	logrusys "github.com/sirupsen/logrus/hooks/syslog"
	"github.com/tidwall/buntdb"
	"github.com/uptrace/bun"
	_ "github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/usergate/usergate"
	"github.com/usergate/usergate/event"
	"github.com/usergate/usergate/mail"
	"github.com/usergate/usergate/persistent"
	"github.com/usergate/usergate/reqres"
	"github.com/usergate/usergate/transport/rest"
)

func listenAndServe(
	ctx context.Context,
	userStore usergate.UserStore,
	avatarStore usergate.AvatarStore,
	blobStore usergate.BlobStore,
	directory usergate.Directory,
	notifyAdmin mail.Notifier,
	publishUserCreated event.UserCreatedPublisher,
	debug bool,
) func() error {
	avatarCache := &usergate.AvatarCache{
		Store:     avatarStore,
		Blobs:     blobStore,
		Directory: directory,
	}

	userController := rest.UserController{
		Store:              userStore,
		Directory:          directory,
		NotifyAdmin:        notifyAdmin,
		PublishUserCreated: publishUserCreated,
	}
	avatarController := rest.AvatarController{Cache: avatarCache}

	server := fiber.New()
	server.Use(rest.LogHandler())

	api := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: rest.ErrorHandler,
	})

	if debug {
		api.Use(cors.New(cors.Config{AllowOrigins: "http://localhost:3000"}))
	}

	api.Get("/status", monitor.New())
	userController.InstallTo(api)
	avatarController.InstallTo(api)

	server.Mount("/api/", api)
	server.Use(rest.NotFoundHandler)

	var addr string
	if debug {
		addr = "127.0.0.1:3000"
	} else {
		addr = ":3000"
	}
	go server.Listen(addr)

	return func() error {
		return server.Shutdown()
	}
}

func setupLogger(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.Stamp,
		FullTimestamp:   true,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	syslogHook, err := logrusys.NewSyslogHook("", "", syslog.LOG_USER, "usergate")
	if err != nil {
		logrus.WithError(err).Fatalln("Could not create syslog hook.")
		return
	}
	logrus.AddHook(syslogHook)
}

func requireEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		logrus.Fatalln(key + " not set!")
	}
	return value
}

func envOr(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func mailConfigFromEnv() mail.Config {
	port, err := strconv.Atoi(envOr("MAIL_SMTP_PORT", "25"))
	if err != nil {
		logrus.WithError(err).Fatalln("Invalid MAIL_SMTP_PORT.")
	}
	return mail.Config{
		Host:    envOr("MAIL_SMTP_HOST", "localhost"),
		Port:    port,
		From:    envOr("MAIL_FROM", "usergate@localhost"),
		AdminTo: requireEnv("MAIL_ADMIN_TO"),
	}
}

// avatarMetaStore picks the avatar metadata backend. Default is the pg
// store; AVATAR_STORE=bunt runs the cache on an embedded buntdb file so the
// whole avatar path works without Postgres.
func avatarMetaStore(ctx context.Context, debug bool) (usergate.AvatarStore, usergate.UserStore, func()) {
	if os.Getenv("AVATAR_STORE") == "bunt" {
		bdb, err := buntdb.Open(envOr("AVATAR_KV_PATH", "avatars.db"))
		if err != nil {
			logrus.WithError(err).Fatalln("Could not open buntdb.")
		}

		pg := openPg(ctx, debug)
		return &persistent.KvAvatarStore{Buntdb: bdb}, &persistent.UserStore{DB: pg}, func() {
			bdb.Close()
			pg.Close()
		}
	}

	pg := openPg(ctx, debug)
	return &persistent.AvatarStore{DB: pg}, &persistent.UserStore{DB: pg}, func() {
		pg.Close()
	}
}

func openPg(ctx context.Context, debug bool) *bun.DB {
	pgDsn := requireEnv("POSTGRES_DSN")

	logrus.Infoln("Opening database.")
	pg := persistent.PgOpen(ctx, pgDsn)
	if debug {
		pg.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return pg
}

func awaitInterruption() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}

func main() {
	flag.Parse()
	debug := os.Getenv("DEBUG") == "true"
	setupLogger(debug)
	logrus.Infoln("Starting usergate.")

	ctx := context.Background()

	avatarStore, userStore, closeStores := avatarMetaStore(ctx, debug)
	defer closeStores()

	blobStore := &persistent.FsBlobStore{Dir: envOr("AVATAR_DIR", "avatars")}
	directory := &reqres.Client{BaseUrl: envOr("REQRES_BASE_URL", "https://reqres.in")}
	notifyAdmin := mail.SmtpNotifier(mailConfigFromEnv())
	publishUserCreated := event.RestUserCreatedPublisher(requireEnv("USER_CREATED_WEBHOOK_URL"))

	logrus.Infoln("Starting listening... To shut down use ^C")
	shutdown := listenAndServe(ctx, userStore, avatarStore, blobStore, directory,
		notifyAdmin, publishUserCreated, debug)

	awaitInterruption()

	logrus.Infoln("Shutting down...")
	if err := shutdown(); err != nil {
		logrus.WithError(err).Warningln("Fiber shutdown failed.")
	}
	logrus.Exit(0)
}
