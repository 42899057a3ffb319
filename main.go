package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/crest/internal/app"
	"github.com/llehouerou/crest/internal/config"
	"github.com/llehouerou/crest/internal/icons"
	"github.com/llehouerou/crest/internal/lastfm"
	"github.com/llehouerou/crest/internal/logging"
	"github.com/llehouerou/crest/internal/lyrics"
	"github.com/llehouerou/crest/internal/notify"
	"github.com/llehouerou/crest/internal/playback"
	"github.com/llehouerou/crest/internal/player"
	"github.com/llehouerou/crest/internal/playlist"
	"github.com/llehouerou/crest/internal/presence"
	"github.com/llehouerou/crest/internal/state"
	"github.com/llehouerou/crest/internal/stderr"
	"github.com/llehouerou/crest/internal/subsonic"
)

func main() {
	lastfmAuth := flag.Bool("lastfm-auth", false, "run the Last.fm authorization flow and exit")
	flag.Parse()

	if err := run(*lastfmAuth); err != nil {
		fmt.Fprintf(os.Stderr, "crest: %v\n", err)
		os.Exit(1)
	}
}

func run(lastfmAuth bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.HasServer() {
		return fmt.Errorf("no server configured; set server.url, server.username and server.password in the config file")
	}

	icons.Init(cfg.UI.Icons)

	logFile, err := logging.OpenLogFile()
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := logging.New(logFile)

	// ALSA writes errors straight to fd 2, which would tear up the TUI.
	if err := stderr.Start(func(line string) {
		logger.Warn("audio backend", "msg", line)
	}); err != nil {
		logger.Warn("stderr capture unavailable", "err", err)
	}
	defer stderr.Stop()

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	var lastfmClient *lastfm.Client
	if cfg.HasLastfm() {
		lastfmClient = lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
		if _, key := stateMgr.LastfmSession(); key != "" {
			lastfmClient.SetSessionKey(key)
		}
	}

	if lastfmAuth {
		if lastfmClient == nil {
			return fmt.Errorf("no Last.fm credentials configured; set lastfm.api_key and lastfm.api_secret")
		}
		return runLastfmAuth(lastfmClient, stateMgr)
	}

	client := subsonic.New(cfg.Server.URL, cfg.Server.Username, cfg.Server.Password)
	client.MaxBitrate = cfg.Server.Bitrate

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = client.Ping(pingCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Server.URL, err)
	}

	p := player.New()
	defer p.Close()
	p.SetVolume(stateMgr.Volume())

	queue := playlist.NewQueue()
	if qs, err := stateMgr.Queue(); err == nil && len(qs.Tracks) > 0 {
		queue.Restore(qs.Tracks, qs.CurrentIndex, qs.Shuffle, qs.Repeat)
	} else if err != nil {
		logger.Warn("failed to restore queue", "err", err)
	}

	scrobblers := []playback.Scrobbler{subsonic.NewScrobbleReporter(client)}
	if lastfmClient != nil {
		scrobblers = append(scrobblers, lastfm.NewSubmitter(lastfmClient))
	}
	svc := playback.New(p, queue, client, scrobblers...)
	defer svc.Close()

	updater := presence.NewUpdater(presence.NewDiscordTransport(), cfg.Discord.ApplicationID, cfg.Discord.Enabled)
	defer updater.Close()

	m := app.New(app.Deps{
		Cfg:      cfg,
		Log:      logger,
		Subsonic: client,
		Playback: svc,
		Player:   p,
		State:    stateMgr,
		Lyrics:   lyrics.NewSource(),
		Presence: updater,
		Notify:   notify.New(cfg.NotificationsEnabled()),
	})

	prog := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// runLastfmAuth walks the browser authorization flow: a local callback
// server receives the token, which is then exchanged for a session key
// stored alongside the rest of the session state.
func runLastfmAuth(client *lastfm.Client, stateMgr *state.Manager) error {
	srv, err := lastfm.StartAuthServer()
	if err != nil {
		return err
	}
	defer srv.Shutdown()

	callback := fmt.Sprintf("http://localhost:%d/callback", lastfm.AuthCallbackPort)
	authURL := client.AuthURLWithCallback(callback)
	fmt.Printf("Opening %s\n", authURL)
	if err := lastfm.OpenBrowser(authURL); err != nil {
		fmt.Println("Could not open a browser; paste the URL above into one manually.")
	}

	fmt.Println("Waiting for authorization...")
	select {
	case token := <-srv.TokenChan():
		username, sessionKey, err := client.GetSession(token)
		if err != nil {
			return fmt.Errorf("exchange token: %w", err)
		}
		if err := stateMgr.SaveLastfmSession(username, sessionKey); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		fmt.Printf("Authorized as %s.\n", username)
		return nil
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timed out waiting for Last.fm authorization")
	}
}
