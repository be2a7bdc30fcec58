package cmd

// Config carries the environment-driven settings of the service. AmqpURL is
// optional; when empty the broker sink is not wired and tracking snapshots
// stay in-process only.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	AmqpURL    string
}
