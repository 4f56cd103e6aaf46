package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ecoa/internal/api"
	"ecoa/internal/app"
	"ecoa/internal/session"
	"ecoa/internal/tui"
)

const version = "1.0.0"

func loadApp(cmd *cobra.Command) (*app.Application, error) {
	cfg, err := app.LoadConfig(app.DefaultConfigPath())
	if err != nil {
		return nil, err
	}
	if flag, _ := cmd.Flags().GetString("base-url"); flag != "" {
		cfg.BaseURL = flag
	} else if env := os.Getenv("ECOA_BASE_URL"); env != "" {
		cfg.BaseURL = env
	}
	return app.New(cfg)
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func main() {
	root := &cobra.Command{
		Use:     "ecoa",
		Short:   "ECOA - monitoramento de menções na mídia",
		Long:    "Terminal do ECOA: acompanhe termos monitorados, notícias com análise de sentimento e estatísticas do seu mandato ou marca.\n\nSem argumentos abre a interface interativa; os subcomandos servem para scripts.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			page, _ := cmd.Flags().GetString("page")
			p := tea.NewProgram(tui.New(application, page), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	root.PersistentFlags().String("base-url", "", "Endereço da API (sobrepõe config e ECOA_BASE_URL)")
	root.Flags().String("page", "", "Página inicial: dashboard|news|filters|settings")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Entra na sua conta e guarda a sessão",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			email, _ := cmd.Flags().GetString("email")
			if email == "" {
				if email, err = promptLine("Email: "); err != nil {
					return err
				}
			}
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				if password, err = promptLine("Senha: "); err != nil {
					return err
				}
			}
			if err := application.Session.Login(context.Background(), email, password); err != nil {
				return fmt.Errorf("%s", application.Session.Snapshot().Err)
			}
			user := application.Session.Snapshot().User
			fmt.Printf("Sessão iniciada como %s (%s)\n", user.FullName, user.Email)
			return nil
		},
	}
	loginCmd.Flags().String("email", "", "Email da conta")
	loginCmd.Flags().String("password", "", "Senha (evite em shells com histórico)")
	root.AddCommand(loginCmd)

	root.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Encerra a sessão e apaga a credencial local",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer application.Close()
			application.Session.Logout(context.Background())
			fmt.Println("Sessão encerrada.")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Mostra a conta da sessão atual",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			st := application.Session.Snapshot()
			if !st.Authenticated() {
				return fmt.Errorf("nenhuma sessão ativa; use 'ecoa login'")
			}
			fmt.Printf("%s <%s> · plano %s\n", st.User.FullName, st.User.Email, st.User.PlanType)
			if exp, ok := session.TokenExpiry(st.Token); ok {
				fmt.Printf("Sessão válida até %s\n", exp.Local().Format("02/01/2006 15:04"))
			}
			return nil
		},
	})

	filtersCmd := &cobra.Command{
		Use:   "filters",
		Short: "Gerencia os termos monitorados",
	}
	filtersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Lista os termos e o uso do plano",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			view, err := application.Filters.Load(context.Background())
			if err != nil {
				return err
			}
			for _, f := range view.Items {
				status := "inativo"
				if f.IsActive {
					status = "ativo"
				}
				fmt.Printf("%s\t%s\t%s\t%d menções\n", f.ID, f.Term, status, f.MatchCount)
			}
			fmt.Printf("%d de %d termos utilizados\n", view.Total, view.PlanLimit)
			if view.LimitReached {
				fmt.Println("Limite do plano atingido.")
			}
			return nil
		},
	})
	filtersCmd.AddCommand(&cobra.Command{
		Use:   "add <termo>",
		Short: "Adiciona um termo monitorado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			if _, err := application.Filters.Add(context.Background(), args[0]); err != nil {
				return fmt.Errorf("%s", apiDetail(err))
			}
			fmt.Println("Termo adicionado.")
			return nil
		},
	})
	filtersCmd.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Ativa ou desativa um termo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			if _, err := application.Filters.Load(context.Background()); err != nil {
				return err
			}
			if _, err := application.Filters.Toggle(context.Background(), args[0]); err != nil {
				return fmt.Errorf("%s", apiDetail(err))
			}
			fmt.Println("Termo atualizado.")
			return nil
		},
	})
	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove um termo monitorado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			if _, err := application.Filters.Load(context.Background()); err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				answer, err := promptLine("Tem certeza que deseja remover este termo? (s/n) ")
				if err != nil {
					return err
				}
				if answer != "s" && answer != "y" {
					fmt.Println("Cancelado.")
					return nil
				}
			}
			if _, err := application.Filters.Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("%s", apiDetail(err))
			}
			fmt.Println("Termo removido.")
			return nil
		},
	}
	rmCmd.Flags().BoolP("yes", "y", false, "Não pedir confirmação")
	filtersCmd.AddCommand(rmCmd)
	root.AddCommand(filtersCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Mostra estatísticas, tendências e fontes",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			ctx := context.Background()
			stats, err := application.Client.GetStats(ctx)
			if err != nil {
				return fmt.Errorf("%s", apiDetail(err))
			}
			fmt.Printf("Notícias: %d (%d hoje)\n", stats.TotalNews, stats.NewsToday)
			fmt.Printf("Sentimento: %d positivas · %d negativas · %d neutras\n",
				stats.PositiveMentions, stats.NegativeMentions, stats.NeutralMentions)
			fmt.Printf("Termos ativos: %d\n", stats.ActiveTerms)

			days, _ := cmd.Flags().GetInt("days")
			trends, err := application.Client.GetTrends(ctx, days)
			if err != nil {
				return fmt.Errorf("%s", apiDetail(err))
			}
			for _, tr := range trends {
				total := 0
				for _, p := range tr.Data {
					total += p.Count
				}
				fmt.Printf("%s\t%d menções nos últimos %d dias\n", tr.Term, total, days)
			}

			sources, err := application.Client.GetSourceStats(ctx)
			if err != nil {
				return fmt.Errorf("%s", apiDetail(err))
			}
			for _, src := range sources {
				fmt.Printf("%s\t%.0f%% (%d)\n", src.Source, src.Percentage, src.Count)
			}
			return nil
		},
	}
	statsCmd.Flags().Int("days", 7, "Janela das tendências, em dias")
	root.AddCommand(statsCmd)

	newsCmd := &cobra.Command{
		Use:   "news",
		Short: "Lista notícias encontradas",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			q := newsQueryFromFlags(cmd, application.Config.PerPage)
			list, err := application.Client.ListNews(context.Background(), q)
			if err != nil {
				return fmt.Errorf("%s", apiDetail(err))
			}
			for _, item := range list.Items {
				sentiment := item.Sentiment
				if sentiment == "" {
					sentiment = "-"
				}
				fmt.Printf("%s\t%s\t%s\t%s\n", item.ID, item.Source, sentiment, item.Title)
			}
			fmt.Printf("página %d de %d (%d notícias)\n", list.Page, list.TotalPages, list.Total)
			return nil
		},
	}
	newsCmd.Flags().String("term", "", "Filtra por termo")
	newsCmd.Flags().String("source", "", "Filtra por fonte (g1|cnn|twitter|threads)")
	newsCmd.Flags().String("sentiment", "", "Filtra por sentimento (positive|negative|neutral)")
	newsCmd.Flags().Int("page", 1, "Página")
	root.AddCommand(newsCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func apiDetail(err error) string {
	return api.Detail(err, err.Error())
}

func newsQueryFromFlags(cmd *cobra.Command, perPage int) api.NewsQuery {
	term, _ := cmd.Flags().GetString("term")
	source, _ := cmd.Flags().GetString("source")
	sentiment, _ := cmd.Flags().GetString("sentiment")
	page, _ := cmd.Flags().GetInt("page")
	return api.NewsQuery{
		Term:      term,
		Source:    source,
		Sentiment: sentiment,
		Page:      page,
		PerPage:   perPage,
	}
}
