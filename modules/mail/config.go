package mail

// Config holds email delivery configuration.
// The Postmark tokens are optional so development environments can fall
// back to the filesystem sender.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@example.com"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@example.com"`
	AppName              string `env:"APP_NAME" envDefault:"Auth Service"`
	FrontendURL          string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	DevOutputDir         string `env:"MAIL_DEV_OUTPUT_DIR" envDefault:"./tmp/emails"`
	QueueSize            int    `env:"MAIL_QUEUE_SIZE" envDefault:"64"`
}
