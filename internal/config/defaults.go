package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CompanyDefaults is the profile stored the first time the company singleton is read.
type CompanyDefaults struct {
	Name          string `mapstructure:"name"`
	Address       string `mapstructure:"address"`
	Email         string `mapstructure:"email"`
	Phone         string `mapstructure:"phone"`
	GSTNumber     string `mapstructure:"gstNumber"`
	BankName      string `mapstructure:"bankName"`
	AccountName   string `mapstructure:"accountName"`
	AccountNumber string `mapstructure:"accountNumber"`
	IFSC          string `mapstructure:"ifsc"`
	Branch        string `mapstructure:"branch"`
	UPI           string `mapstructure:"upi"`
}

// SettingsDefaults seeds the settings singleton.
type SettingsDefaults struct {
	DefaultTax      float64 `mapstructure:"defaultTax"`
	DefaultCurrency string  `mapstructure:"defaultCurrency"`
}

type Defaults struct {
	Company  CompanyDefaults  `mapstructure:"company"`
	Settings SettingsDefaults `mapstructure:"settings"`
}

func BuiltinDefaults() Defaults {
	return Defaults{
		Company: CompanyDefaults{
			Name:          "the black crest",
			Address:       "8/1765, Ponnammal Nagar Main Road, Pandian Nagar, Tiruppur, Tamil Nadu 641602",
			Email:         "thehynoxofficial@gmail.com",
			Phone:         "+91 8870524355",
			GSTNumber:     "33CGZPV6446G1ZK",
			AccountName:   "the black crest",
			AccountNumber: "23150200001119",
			IFSC:          "FDRL0002315",
			Branch:        "NAMBIYAMPALAYAM",
		},
		Settings: SettingsDefaults{
			DefaultTax:      18,
			DefaultCurrency: "INR",
		},
	}
}

// DefaultsHolder serves the current defaults snapshot and swaps it when the file changes.
type DefaultsHolder struct {
	current atomic.Value // holds Defaults
}

// NewStaticDefaultsHolder returns a holder that never reloads.
func NewStaticDefaultsHolder(d Defaults) *DefaultsHolder {
	holder := &DefaultsHolder{}
	holder.current.Store(d)
	return holder
}

func NewDefaultsHolder(cfg Config, log *zap.Logger) (*DefaultsHolder, error) {
	log = log.Named("config.defaults")
	v := viper.New()

	if cfg.DefaultsFile != "" {
		v.SetConfigFile(cfg.DefaultsFile)
	} else {
		v.SetConfigName("defaults")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/hynox")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HYNOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	builtin := BuiltinDefaults()

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileFound = false
	}

	loaded, err := unmarshalDefaults(v, builtin)
	if err != nil {
		return nil, err
	}

	holder := NewStaticDefaultsHolder(loaded)
	if !fileFound {
		log.Info("defaults file not found, using builtin defaults")
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := unmarshalDefaults(v, builtin)
		if err != nil {
			log.Warn("defaults reload failed", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("defaults reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return holder, nil
}

// Get returns the current snapshot; a nil holder yields the builtins.
func (h *DefaultsHolder) Get() Defaults {
	if h == nil {
		return BuiltinDefaults()
	}
	return h.current.Load().(Defaults)
}

func unmarshalDefaults(v *viper.Viper, fallback Defaults) (Defaults, error) {
	out := fallback
	if err := v.Unmarshal(&out); err != nil {
		return Defaults{}, err
	}
	if err := validateDefaults(out); err != nil {
		return Defaults{}, err
	}
	return out, nil
}

func validateDefaults(d Defaults) error {
	if strings.TrimSpace(d.Company.Name) == "" {
		return errors.New("company.name cannot be empty")
	}
	if d.Settings.DefaultTax < 0 {
		return errors.New("settings.defaultTax cannot be negative")
	}
	if strings.TrimSpace(d.Settings.DefaultCurrency) == "" {
		return errors.New("settings.defaultCurrency cannot be empty")
	}
	return nil
}
