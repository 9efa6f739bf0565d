package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/matt-g-everett/blobtx/api"
	"github.com/matt-g-everett/blobtx/gallery"
	"github.com/matt-g-everett/blobtx/morph"
	"github.com/matt-g-everett/blobtx/stream"
	"github.com/matt-g-everett/blobtx/theme"
	"golang.org/x/sync/errgroup"
)

type app struct {
	Config     stream.Config
	ConfigPath string
	Client     mqtt.Client
	Loop       *morph.Loop
	Controller *stream.Controller
	Streamer   *stream.Streamer
	Api        *api.Api
}

func newApp() *app {
	a := new(app)
	a.Loop = morph.NewLoop()
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Streamer.Subscribe(); err != nil {
		log.Printf("Subscribe failed: %v", err)
	}
}

func (a *app) readConfig(configPath string) {
	config, err := stream.ReadConfig(configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}
	a.Config = config
	a.ConfigPath = configPath
}

func (a *app) build() error {
	light, err := a.Config.Theme.Light.Palette()
	if err != nil {
		return err
	}
	dark, err := a.Config.Theme.Dark.Palette()
	if err != nil {
		return err
	}
	switcher := theme.NewSwitcher(theme.NewStore(a.Config.Theme.PreferenceFile), light, dark, a.Config.ThemeTransition())

	a.Controller, err = stream.NewController(a.Config, a.Loop, gallery.New(a.Config.Gallery.Images, nil), switcher)
	if err != nil {
		return err
	}

	if a.Config.Mqtt.URL != "" {
		options := mqtt.NewClientOptions().
			AddBroker(a.Config.Mqtt.URL).
			SetClientID(a.Config.Mqtt.ClientID + "-" + uuid.NewString()[:8]).
			SetUsername(a.Config.Mqtt.Username).
			SetPassword(a.Config.Mqtt.Password).
			SetKeepAlive(30 * time.Second).
			SetPingTimeout(5 * time.Second).
			SetAutoReconnect(true).
			SetOnConnectHandler(a.handleOnConnect)
		a.Client = mqtt.NewClient(options)
	}

	a.Streamer = stream.NewStreamer(a.Config, a.Client, a.Loop, a.Controller, a.Controller)
	a.Api = api.NewApi(a.Config.Api.Listen, a.Config.Api.StaticDir, a.Controller)
	a.Streamer.AddOutput(a.Api)
	return nil
}

func (a *app) reload(config stream.Config) {
	a.Controller.SetShapes(config.Animation.Shapes)
	a.Controller.SetImages(config.Gallery.Images)
}

func (a *app) run(ctx context.Context) error {
	if a.Client != nil {
		if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
			return token.Error()
		}
		defer a.Client.Disconnect(250)
	}

	a.Controller.Start()
	defer a.Controller.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Streamer.Run(ctx)
	})
	if a.Config.Api.Listen != "" {
		g.Go(func() error {
			return a.Api.Serve(ctx)
		})
	}

	watcher, err := stream.NewConfigWatcher(a.ConfigPath, a.reload)
	if err != nil {
		log.Printf("Config reload disabled: %v", err)
	} else {
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	return g.Wait()
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: broker=%q listen=%q shapes=%d images=%d",
		a.Config.Mqtt.URL, a.Config.Api.Listen, len(a.Config.Animation.Shapes), len(a.Config.Gallery.Images))

	if err := a.build(); err != nil {
		log.Fatalf("Startup: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx); err != nil {
		log.Fatalf("Run: %v", err)
	}
}
