package main

import (
	"fmt"
	"io"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	balcao "github.com/balcao-erp/balcao.go"
	"github.com/balcao-erp/balcao.go/pkg/constants"
	"github.com/balcao-erp/balcao.go/pkg/logger"
	"github.com/balcao-erp/balcao.go/pkg/store/memstore"
	"github.com/balcao-erp/balcao.go/pkg/store/rest"
	"github.com/balcao-erp/balcao.go/pkg/store/wsrpc"
)

var rootCmd = &cobra.Command{
	Use:           "balcao",
	Short:         "Cliente de estoque e vendas por terminal",
	Long:          "balcao navega as coleções do backend de estoque (produtos, clientes, fornecedores, ordens) direto do terminal.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("backend", "demo", "backend de dados: demo, rest ou ws")
	flags.String("url", "", "endereço do backend (http(s):// para rest, ws(s):// para ws)")
	flags.String("api-key", "", "chave de acesso enviada ao backend rest")
	flags.String("user", "", "identificador do usuário para auditoria e autoria")
	flags.String("log-file", "", "arquivo de log; vazio desliga o log")

	viper.SetEnvPrefix("BALCAO")
	viper.AutomaticEnv()
	for _, name := range []string{"backend", "url", "api-key", "user", "log-file"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func newLogger() (zerolog.Logger, error) {
	path := viper.GetString("log-file")
	if path == "" {
		build, err := logger.New().FromBuffer(io.Discard).Make()
		if err != nil {
			return zerolog.Nop(), err
		}
		return build.Logger, nil
	}
	build, err := logger.New().FromPath(path).Make()
	if err != nil {
		return zerolog.Nop(), err
	}
	return build.Logger, nil
}

func newStore(log zerolog.Logger) (balcao.Store, error) {
	switch backend := viper.GetString("backend"); backend {
	case "demo":
		return memstore.Demo(), nil
	case "rest":
		endpoint, err := checkScheme(viper.GetString("url"),
			constants.HTTPScheme, constants.HTTPSecureScheme)
		if err != nil {
			return nil, err
		}
		return rest.New(endpoint,
			rest.WithAPIKey(viper.GetString("api-key")),
			rest.WithLogger(log))
	case "ws":
		endpoint, err := checkScheme(viper.GetString("url"),
			constants.WebsocketScheme, constants.WebsocketSecureScheme)
		if err != nil {
			return nil, err
		}
		return wsrpc.Dial(endpoint, wsrpc.WithLogger(log))
	default:
		return nil, fmt.Errorf("backend desconhecido: %q", backend)
	}
}

func checkScheme(endpoint string, schemes ...string) (string, error) {
	if endpoint == "" {
		return "", constants.ErrNoBaseURL
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	for _, scheme := range schemes {
		if u.Scheme == scheme {
			return endpoint, nil
		}
	}
	return "", fmt.Errorf("esquema %q não suportado por este backend", u.Scheme)
}

func newClient(store balcao.Store, notifier balcao.Notifier, log zerolog.Logger) *balcao.Client {
	opts := []balcao.Option{
		balcao.WithNotifier(notifier),
		balcao.WithAudit(balcao.NewCollectionAudit(store)),
		balcao.WithLogger(log),
	}
	if user := viper.GetString("user"); user != "" {
		opts = append(opts, balcao.WithIdentity(balcao.StaticIdentity(user)))
	}
	return balcao.NewClient(store, opts...)
}
