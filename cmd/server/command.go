package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/palemoky/old-maid/internal/config"
	"github.com/palemoky/old-maid/internal/logger"
	"github.com/palemoky/old-maid/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("OLDMAID")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var configPath string

	cmd := &cobra.Command{
		Use:           "oldmaid-server",
		Short:         "Authoritative server for a single-room game of Old Maid.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			applyOverrides(cfg, v)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&configPath, "config", "c", "configs/config.yaml", "path to yaml config file (env: OLDMAID_CONFIG)")
	fs.StringP("host", "b", "", "address to bind to (env: OLDMAID_HOST)")
	fs.IntP("port", "p", 0, "port to listen on (env: OLDMAID_PORT or PORT)")
	fs.String("codec", "", "wire codec, json or protobuf (env: OLDMAID_CODEC)")
	fs.Int("max-connections", 0, "maximum concurrent connections (env: OLDMAID_MAX_CONNECTIONS)")
	fs.StringSlice("allowed-origins", nil, "allowed websocket origins, empty allows all (env: OLDMAID_ALLOWED_ORIGINS)")
	fs.String("public-url", "", "join url encoded in the /qr code (env: OLDMAID_PUBLIC_URL)")
	fs.String("room-id", "", "id of the shared room (env: OLDMAID_ROOM_ID)")
	fs.Int("min-players", 0, "players required to start a game (env: OLDMAID_MIN_PLAYERS)")
	fs.Bool("redis", false, "record history and stats in redis (env: OLDMAID_REDIS)")
	fs.String("redis-addr", "", "redis address (env: OLDMAID_REDIS_ADDR)")
	fs.String("redis-password", "", "redis password (env: OLDMAID_REDIS_PASSWORD)")
	fs.String("log-level", "", "debug, info, warn or error (env: OLDMAID_LOG_LEVEL)")
	fs.String("log-format", "", "text or json (env: OLDMAID_LOG_FORMAT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
	_ = v.BindEnv("port", "OLDMAID_PORT", "PORT")

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("oldmaid-server v{{.Version}}\n")

	return cmd
}

// loadConfig 读取配置文件，文件不存在时使用默认配置
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverrides 用命令行参数和环境变量覆盖配置文件
func applyOverrides(cfg *config.Config, v *viper.Viper) {
	if v.IsSet("host") {
		cfg.Server.Host = v.GetString("host")
	}
	if v.IsSet("port") {
		cfg.Server.Port = v.GetInt("port")
	}
	if v.IsSet("codec") {
		cfg.Server.Codec = v.GetString("codec")
	}
	if v.IsSet("max-connections") {
		cfg.Server.MaxConnections = v.GetInt("max-connections")
	}
	if v.IsSet("allowed-origins") {
		cfg.Server.AllowedOrigins = v.GetStringSlice("allowed-origins")
	}
	if v.IsSet("public-url") {
		cfg.Server.PublicURL = v.GetString("public-url")
	}
	if v.IsSet("room-id") {
		cfg.Game.RoomID = v.GetString("room-id")
	}
	if v.IsSet("min-players") {
		cfg.Game.MinPlayers = v.GetInt("min-players")
	}
	if v.IsSet("redis") {
		cfg.Redis.Enabled = v.GetBool("redis")
	}
	if v.IsSet("redis-addr") {
		cfg.Redis.Addr = v.GetString("redis-addr")
	}
	if v.IsSet("redis-password") {
		cfg.Redis.Password = v.GetString("redis-password")
	}
	if v.IsSet("log-level") {
		cfg.Log.Level = v.GetString("log-level")
	}
	if v.IsSet("log-format") {
		cfg.Log.Format = v.GetString("log-format")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("创建服务器失败: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.LogInfo("🃏 抽鬼牌服务器启动中...")
		errCh <- srv.Start(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.LogInfo("正在关闭服务器...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
