package configs

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

// AppConfig holds the application configuration.
// It's populated once by LoadConfig.
var AppConfig Configuration
var once sync.Once

// Configuration defines the structure for application settings.
type Configuration struct {
	JWTSecret    string
	ServerPort   string
	TokenExpiry  time.Duration
	TaskInterval time.Duration
	StaticDir    string
}

const (
	defaultJWTSecret    = "library"        // Default JWT secret, used if env var is not set.
	envJWTSecretKey     = "JWT_SECRET_KEY" // Environment variable name for the JWT secret.
	defaultServerPort   = "8080"           // Default server port.
	envServerPortKey    = "SERVER_PORT"    // Environment variable name for the server port.
	defaultTokenExpiry  = 24 * time.Hour   // 会话 Token 默认有效期
	envTokenExpiryKey   = "TOKEN_EXPIRY_HOURS"
	defaultTaskInterval = 60 * time.Second // 状态更新任务默认执行间隔
	envTaskIntervalKey  = "TASK_INTERVAL_SECONDS"
	defaultStaticDir    = "web" // 静态资源目录
	envStaticDirKey     = "STATIC_DIR"
)

// LoadConfig loads configuration from environment variables or defaults.
// It should be called once at application startup.
func LoadConfig() {
	once.Do(func() {
		jwtSecret := os.Getenv(envJWTSecretKey)
		if jwtSecret == "" {
			jwtSecret = defaultJWTSecret
			log.Printf("警告: %s 环境变量未设置。正在使用默认的JWT密钥。请在生产环境中设置此变量以保证安全。", envJWTSecretKey)
		}

		serverPort := os.Getenv(envServerPortKey)
		if serverPort == "" {
			serverPort = defaultServerPort
			log.Printf("信息: %s 环境变量未设置。正在使用默认端口 %s。", envServerPortKey, defaultServerPort)
		}

		tokenExpiry := defaultTokenExpiry
		if v := os.Getenv(envTokenExpiryKey); v != "" {
			if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
				tokenExpiry = time.Duration(hours) * time.Hour
			} else {
				log.Printf("警告: %s 的值 %q 无效，使用默认值 %v。", envTokenExpiryKey, v, defaultTokenExpiry)
			}
		}

		taskInterval := defaultTaskInterval
		if v := os.Getenv(envTaskIntervalKey); v != "" {
			if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
				taskInterval = time.Duration(seconds) * time.Second
			} else {
				log.Printf("警告: %s 的值 %q 无效，使用默认值 %v。", envTaskIntervalKey, v, defaultTaskInterval)
			}
		}

		staticDir := os.Getenv(envStaticDirKey)
		if staticDir == "" {
			staticDir = defaultStaticDir
		}

		AppConfig = Configuration{
			JWTSecret:    jwtSecret,
			ServerPort:   serverPort,
			TokenExpiry:  tokenExpiry,
			TaskInterval: taskInterval,
			StaticDir:    staticDir,
		}

		log.Println("应用配置已加载。")
	})
}
