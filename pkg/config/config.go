package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	JWT       JWTConfig
	Documents DocumentConfig
	Shop      ShopConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StoreConfig points at the remote JSON document store
// (a Firebase-RTDB-style REST endpoint).
type StoreConfig struct {
	BaseURL string
	Timeout time.Duration
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// DocumentConfig controls document persistence. When StoreSync is off,
// documents stay in memory for the lifetime of the process and only
// photos are written to the remote store.
type DocumentConfig struct {
	StoreSync bool
}

// ShopConfig holds the shop letterhead used on printable documents.
type ShopConfig struct {
	Name     string
	Phone1   string
	Phone2   string
	LineID   string
	Hours    string
	Location string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine, environment variables still apply (Docker/K8s).

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	storeTimeout, _ := strconv.Atoi(getEnv("STORE_TIMEOUT", "15"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	storeSync := getEnv("DOCUMENT_STORE_SYNC", "true") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Store: StoreConfig{
			BaseURL: getEnv("STORE_BASE_URL", "https://piscopy-store-default-rtdb.asia-southeast1.firebasedatabase.app"),
			Timeout: time.Duration(storeTimeout) * time.Second,
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		Documents: DocumentConfig{
			StoreSync: storeSync,
		},
		Shop: ShopConfig{
			Name:     getEnv("SHOP_NAME", "ถ่ายเอกสารพิส"),
			Phone1:   getEnv("SHOP_PHONE1", "043771476"),
			Phone2:   getEnv("SHOP_PHONE2", "0639898917"),
			LineID:   getEnv("SHOP_LINE_ID", "0815921229"),
			Hours:    getEnv("SHOP_HOURS", "8:00-17:00"),
			Location: getEnv("SHOP_LOCATION", "ข้างธนาคารกสิกรไทย อำเภอบรบือ จังหวัดมหาสารคาม"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
