package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret          string
	MidtransServerKey  string
	MidtransProduction bool
	SendgridAPIKey     string
	SenderEmail        string
	BaseURL            string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransProduction = strings.EqualFold(GetEnv("MIDTRANS_PRODUCTION"), "true")
	SendgridAPIKey = GetEnv("SENDGRID_API_KEY")
	SenderEmail = GetEnv("SENDER_EMAIL", "no-reply@madrasahku.app")
	BaseURL = GetEnv("BASE_URL", "http://localhost:3000")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if MidtransServerKey == "" {
		log.Println("❌ MIDTRANS_SERVER_KEY belum diset!")
	} else {
		log.Println("✅ MIDTRANS_SERVER_KEY berhasil dimuat.")
	}

	if SendgridAPIKey == "" {
		log.Println("⚠️ SENDGRID_API_KEY kosong, notifikasi jatuh ke console")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
