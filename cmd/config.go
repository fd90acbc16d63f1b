package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaOrderChangedTopic string
	JWTSecret              string
	TokenTTL               time.Duration
	TaxRate                decimal.Decimal
	DeliveryFee            kernel.Money
	FeeSchedulePath        string
	PartnerFee             kernel.Money
	AutoCancelTimeout      time.Duration
	AutoCancelBatch        int
	AutoCancelSchedule     string
	ReconcileSchedule      string
	LogLevel               string
}

// Defaults for optional settings.
const (
	defaultTokenTTL           = 12 * time.Hour
	defaultAutoCancelTimeout  = 15 * time.Minute
	defaultAutoCancelBatch    = 100
	defaultAutoCancelSchedule = "*/30 * * * * *"
	defaultReconcileSchedule  = "0 */5 * * * *"
)

// LoadConfig reads the configuration through getenv, usually os.Getenv after
// the optional .env file was loaded.
func LoadConfig(getenv func(string) string) (Config, error) {
	r := envReader{getenv: getenv}

	cfg := Config{
		HTTPPort:               r.str("HTTP_PORT", "8080"),
		DBHost:                 r.required("DB_HOST"),
		DBPort:                 r.str("DB_PORT", "5432"),
		DBUser:                 r.required("DB_USER"),
		DBPassword:             r.str("DB_PASSWORD", ""),
		DBName:                 r.required("DB_NAME"),
		DBSslMode:              r.str("DB_SSLMODE", "disable"),
		KafkaHost:              r.str("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: r.str("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		JWTSecret:              r.required("JWT_SECRET"),
		TokenTTL:               r.duration("TOKEN_TTL", defaultTokenTTL),
		TaxRate:                r.decimal("TAX_RATE_PERCENT", decimal.Zero),
		DeliveryFee:            r.money("DELIVERY_FEE", 0),
		FeeSchedulePath:        r.str("PARTNER_FEE_SCHEDULE", ""),
		PartnerFee:             r.money("PARTNER_FEE", 0),
		AutoCancelTimeout:      r.duration("AUTO_CANCEL_TIMEOUT", defaultAutoCancelTimeout),
		AutoCancelBatch:        r.integer("AUTO_CANCEL_BATCH", defaultAutoCancelBatch),
		AutoCancelSchedule:     r.str("AUTO_CANCEL_SCHEDULE", defaultAutoCancelSchedule),
		ReconcileSchedule:      r.str("RECONCILE_SCHEDULE", defaultReconcileSchedule),
		LogLevel:               r.str("LOG_LEVEL", "info"),
	}

	if cfg.TaxRate.IsNegative() {
		r.fail(errs.NewValueIsOutOfRangeError("TAX_RATE_PERCENT", cfg.TaxRate.String(), 0, 100))
	}
	if cfg.AutoCancelBatch < 1 {
		r.fail(errs.NewValueIsOutOfRangeError("AUTO_CANCEL_BATCH", cfg.AutoCancelBatch, 1, "unbounded"))
	}

	if err := r.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the libpq connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas. Empty means Kafka is disabled.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) fail(err error) {
	r.errs = append(r.errs, err)
}

func (r *envReader) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(r.errs...))
}

func (r *envReader) str(key, fallback string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (r *envReader) required(key string) string {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		r.fail(errs.NewValueIsRequiredError(key))
	}
	return v
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		r.fail(errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%q is not a positive duration", v)))
		return fallback
	}
	return d
}

func (r *envReader) integer(key string, fallback int) int {
	v := r.str(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return n
}

func (r *envReader) decimal(key string, fallback decimal.Decimal) decimal.Decimal {
	v := r.str(key, "")
	if v == "" {
		return fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		r.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return d
}

func (r *envReader) money(key string, fallback int64) kernel.Money {
	minor := int64(r.integer(key, int(fallback)))
	m, err := kernel.NewMoney(minor)
	if err != nil {
		r.fail(err)
		return kernel.Money{}
	}
	return m
}
