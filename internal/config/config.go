package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"quoteScope/internal/chain"
	"quoteScope/internal/token"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL         string
	ChainID        uint64
	Listen         string
	LogLevel       string
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	APIKey         string
	DevMode        bool
	Contracts      chain.Contracts
	V3FeeTier      uint32
	Tokens         []token.Entry
}

// LoadDotEnv exports variables from the given .env files. Missing files are skipped
// and variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QUOTER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	mainnet := chain.MainnetContracts()
	v.SetDefault("chain-id", chain.MainnetChainID)
	v.SetDefault("listen", "0.0.0.0:8000")
	v.SetDefault("log-level", "info")
	v.SetDefault("request-timeout", 15*time.Second)
	v.SetDefault("max-retries", 0)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("v3-fee-tier", chain.DefaultV3FeeTier)
	v.SetDefault("v2-factory", mainnet.V2Factory.Hex())
	v.SetDefault("v2-router", mainnet.V2Router.Hex())
	v.SetDefault("v3-factory", mainnet.V3Factory.Hex())
	v.SetDefault("v3-router", mainnet.V3Router.Hex())

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	contracts, err := loadContracts(v)
	if err != nil {
		return Config{}, err
	}

	tokens, err := ParseTokenEntries(getStringSlice(v, "token"))
	if err != nil {
		return Config{}, err
	}

	feeTier := v.GetUint32("v3-fee-tier")
	if feeTier == 0 {
		return Config{}, fmt.Errorf("v3-fee-tier must be positive")
	}

	cfg := Config{
		RPCURL:         v.GetString("rpc"),
		ChainID:        v.GetUint64("chain-id"),
		Listen:         v.GetString("listen"),
		LogLevel:       v.GetString("log-level"),
		RequestTimeout: v.GetDuration("request-timeout"),
		MaxRetries:     v.GetInt("max-retries"),
		RetryBackoff:   v.GetDuration("retry-backoff"),
		APIKey:         v.GetString("api-key"),
		DevMode:        v.GetBool("dev-mode"),
		Contracts:      contracts,
		V3FeeTier:      feeTier,
		Tokens:         tokens,
	}

	return cfg, nil
}

// ParseTokenEntries parses SYMBOL=0xADDRESS:DECIMALS items.
func ParseTokenEntries(items []string) ([]token.Entry, error) {
	entries := make([]token.Entry, 0, len(items))
	for _, item := range items {
		symbol, rest, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("parse token %q: expected SYMBOL=ADDRESS:DECIMALS", item)
		}
		address, decimalsText, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, fmt.Errorf("parse token %q: missing decimals", item)
		}
		decimals, err := strconv.ParseUint(strings.TrimSpace(decimalsText), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("parse token %q decimals: %w", item, err)
		}
		entries = append(entries, token.Entry{
			Symbol:   strings.ToUpper(strings.TrimSpace(symbol)),
			Address:  strings.TrimSpace(address),
			Decimals: uint8(decimals),
		})
	}
	return entries, nil
}

func loadContracts(v *viper.Viper) (chain.Contracts, error) {
	var contracts chain.Contracts
	targets := []struct {
		key string
		dst *common.Address
	}{
		{"v2-factory", &contracts.V2Factory},
		{"v2-router", &contracts.V2Router},
		{"v3-factory", &contracts.V3Factory},
		{"v3-router", &contracts.V3Router},
	}
	for _, target := range targets {
		address, ok := token.ParseAddress(strings.TrimSpace(v.GetString(target.key)))
		if !ok {
			return chain.Contracts{}, fmt.Errorf("invalid %s address %q", target.key, v.GetString(target.key))
		}
		*target.dst = address
	}
	return contracts, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
