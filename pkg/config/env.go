package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvSignatureSecret = "SIGNATURE_SECRET"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultOpenTime      = "DEFAULT_OPEN_TIME"
	EnvDefaultCloseTime     = "DEFAULT_CLOSE_TIME"
	EnvMaxScheduleRangeDays = "MAX_SCHEDULE_RANGE_DAYS"
	EnvSlotLockTTL          = "SLOT_LOCK_TTL"
	EnvDefaultApptDuration  = "DEFAULT_APPOINTMENT_DURATION"

	EnvSchedulesServiceURL = "SCHEDULES_SERVICE_URL"
	EnvResourcesServiceURL = "RESOURCES_SERVICE_URL"

	EnvKafkaBrokers     = "KAFKA_BROKERS"
	EnvKafkaTopicPrefix = "KAFKA_TOPIC_PREFIX"
)
