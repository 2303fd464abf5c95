package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "agenda"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "INFO"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultDefaultOpenTime      = "09:00"
	DefaultDefaultCloseTime     = "18:00"
	DefaultMaxScheduleRangeDays = 366
	DefaultSlotLockTTL          = 30 * time.Second
	DefaultApptDurationMin      = 30

	DefaultSchedulesServiceURL = "http://localhost:8081"
	DefaultResourcesServiceURL = "http://localhost:8082"

	DefaultKafkaBrokers     = "localhost:9092"
	DefaultKafkaTopicPrefix = "agenda"

	DefaultPaginationLimit = 100
)
