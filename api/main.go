package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

type jwtConfig struct {
	secret   string
	issuer   string
	audience string
}

type config struct {
	port int
	env  string
	db   struct {
		dsn                string
		maxOpenConnections int
		maxIdleConnections int
		maxIdleTime        time.Duration
	}
	smtp struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
	jwt  jwtConfig
	cors struct {
		trustedOrigins []string
	}
	publicItems bool
}

type application struct {
	config  config
	storage store
	mailer  *mailer
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// missing .env is fine; flags and the environment still apply
	_ = godotenv.Load()

	var cfg config
	flag.IntVar(&cfg.port, "port", 3000, "Server Port")
	flag.StringVar(&cfg.env, "env", "development", "Environment [development|production]")

	flag.StringVar(&cfg.db.dsn, "db-dsn", os.Getenv("DB_DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.db.maxOpenConnections, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.IntVar(&cfg.db.maxIdleConnections, "db-max-idle-conns", 25, "PostgreSQL max idle connections")
	var maxIdleTime string
	flag.StringVar(&maxIdleTime, "db-max-idle-time", "15m", "PostgreSQL max connection idle time")

	flag.StringVar(&cfg.smtp.host, "smtp-host", os.Getenv("SMTP_HOST"), "SMTP host")
	var smtpPort string
	flag.StringVar(&smtpPort, "smtp-port", os.Getenv("SMTP_PORT"), "SMTP port")
	flag.StringVar(&cfg.smtp.username, "smtp-username", os.Getenv("SMTP_USERNAME"), "SMTP username")
	flag.StringVar(&cfg.smtp.password, "smtp-password", os.Getenv("SMTP_PASSWORD"), "SMTP password")
	flag.StringVar(&cfg.smtp.sender, "smtp-sender", os.Getenv("SMTP_SENDER"), "SMTP sender")

	flag.StringVar(&cfg.jwt.secret, "jwt-secret", os.Getenv("JWT_SECRET"), "JWT signing secret")
	flag.StringVar(&cfg.jwt.issuer, "jwt-issuer", "todo-api", "JWT issuer")
	flag.StringVar(&cfg.jwt.audience, "jwt-audience", "todo-api", "JWT audience")

	var trustedOrigins string
	flag.StringVar(&trustedOrigins, "cors-trusted-origins", "*", "Trusted CORS origins (space separated)")

	flag.BoolVar(&cfg.publicItems, "public-items", false, "Serve item routes without authentication")
	flag.Parse()

	cfg.cors.trustedOrigins = strings.Fields(trustedOrigins)

	d, err := time.ParseDuration(maxIdleTime)
	if err != nil {
		cfg.db.maxIdleTime = 15 * time.Minute
		log.Printf(`invalid value %s for flag "db-max-idle-time" defaulting to %s`, maxIdleTime, cfg.db.maxIdleTime)
	} else {
		cfg.db.maxIdleTime = d
	}

	if cfg.jwt.secret == "" {
		log.Fatal("jwt-secret must be provided")
	}

	cfg.smtp.port = 25
	if smtpPort != "" {
		port, err := strconv.Atoi(smtpPort)
		if err != nil {
			log.Fatalf("invalid SMTP port %q", smtpPort)
		}
		cfg.smtp.port = port
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("established a connection with database")

	app := &application{
		config:  cfg,
		storage: newStorage(db),
	}
	if cfg.smtp.host != "" {
		app.mailer = newMailer(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password, cfg.smtp.sender)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.port),
		Handler:      composeRoutes(app),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	log.Printf("Starting %s server on port %d\n", cfg.env, cfg.port)
	err = srv.ListenAndServe()
	log.Fatal(err)
}
