package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`

	// Inference backend
	AIModelURL          string `yaml:"AI_MODEL_URL"`
	ModelVersion        string `yaml:"MODEL_VERSION"`
	ConfidenceThreshold string `yaml:"CONFIDENCE_THRESHOLD"`

	// Uploads
	MaxUploadMB string `yaml:"MAX_UPLOAD_MB"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	// Set environment variables for keys that should be accessible via os.Getenv
	os.Setenv("JWT_SECRET", config.JWTSecret)
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("AWS_S3_REGION", config.AWSS3Region)
	os.Setenv("AWS_S3_ENDPOINT", config.AWSS3Endpoint)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
	os.Setenv("AI_MODEL_URL", config.AIModelURL)
	os.Setenv("MODEL_VERSION", config.ModelVersion)
}

func GetConfig(key string) string {
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "AI_MODEL_URL":
		return config.AIModelURL
	case "MODEL_VERSION":
		return config.ModelVersion
	case "CONFIDENCE_THRESHOLD":
		return config.ConfidenceThreshold
	case "MAX_UPLOAD_MB":
		return config.MaxUploadMB
	default:
		return ""
	}
}

// GetConfigFloat parses a numeric config value, falling back to def when the
// key is unset or malformed.
func GetConfigFloat(key string, def float64) float64 {
	raw := GetConfig(key)
	if raw == "" {
		return def
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Invalid numeric config %s=%q, using default %v\n", key, raw, def)
		return def
	}
	return value
}

func GetConfigInt(key string, def int) int {
	raw := GetConfig(key)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid numeric config %s=%q, using default %v\n", key, raw, def)
		return def
	}
	return value
}
