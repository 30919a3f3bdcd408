package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	RedisURL      string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	JWTTTLHours   int // 访问令牌有效期（小时）

	FriendRequestRate   int // sendRequest 限流：每用户每分钟次数
	FriendCooldownHours int // 拒绝后冷却期（小时）
	FriendsCacheTTL     int // 好友列表缓存时间（秒）
}

func Load() *Config {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	jwtTTLHours, _ := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	friendRequestRate, _ := strconv.Atoi(getEnv("FRIEND_REQUEST_RATE", "3"))
	friendCooldownHours, _ := strconv.Atoi(getEnv("FRIEND_COOLDOWN_HOURS", "24"))
	friendsCacheTTL, _ := strconv.Atoi(getEnv("FRIENDS_CACHE_TTL", "300"))

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTLHours:   jwtTTLHours,

		FriendRequestRate:   friendRequestRate,
		FriendCooldownHours: friendCooldownHours,
		FriendsCacheTTL:     friendsCacheTTL,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
