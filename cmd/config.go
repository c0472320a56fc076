package cmd

// Config holds all runtime settings, loaded from the environment by main.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	RedisAddr  string
	KafkaHost  string
}
