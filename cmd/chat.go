package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aircher/ion/internal/debuglog"
	"github.com/aircher/ion/internal/render"
	"github.com/aircher/ion/internal/respond"
	"github.com/aircher/ion/internal/transcript"
)

var chatResume int64

func init() {
	chatCmd.Flags().Int64Var(&chatResume, "resume", 0, "Resume an existing session by id")
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

func runChat(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var store transcript.Store
	if cfg.Transcript.Enabled {
		s, err := transcript.OpenSQLite(cfg.Transcript.Path)
		if err != nil {
			return err
		}
		store = s
	} else {
		store = transcript.NewMemoryStore()
	}
	defer store.Close()

	var stats *debuglog.Logger
	if cfg.Debug.FrameLog != "" {
		stats = debuglog.New(cfg.Debug.FrameLog)
		defer stats.Close()
	}

	r := render.New(os.Stdout, render.Options{
		Markdown:    cfg.Render.Markdown,
		PendingTail: cfg.Render.PendingTail,
		SyncOutput:  cfg.Render.SyncOutputOverride(),
		Stats:       stats,
	})
	if !r.IsTTY() {
		return fmt.Errorf("chat requires a terminal on stdout")
	}

	session, err := resumeOrCreate(ctx, store)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- r.Run(ctx) }()
	defer r.Close()

	// replay history when resuming
	if chatResume != 0 {
		msgs, err := store.Messages(ctx, session.ID)
		if err != nil {
			return err
		}
		for _, m := range msgs {
			r.Append(m.Role, m.Content)
		}
	}
	r.Append(render.RoleSystem, fmt.Sprintf("session %d · /quit to exit", session.ID))

	responder := &respond.Echo{Delay: 20 * time.Millisecond}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		r.SetInput("")
		r.Append(render.RoleUser, line)
		if _, err := store.AppendMessage(ctx, session.ID, render.RoleUser, line); err != nil {
			return err
		}

		if err := streamReply(ctx, r, store, responder, session.ID, line); err != nil {
			return err
		}

		select {
		case err := <-runErr:
			// the render loop died under us, typically a write error
			return err
		default:
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func streamReply(ctx context.Context, r *render.Renderer, store transcript.Store, responder respond.Responder, sessionID int64, prompt string) error {
	r.SetBusy(true)
	r.SetStatus("thinking")
	defer func() {
		r.SetBusy(false)
		r.SetStatus("")
	}()

	ch, err := responder.Reply(ctx, prompt)
	if err != nil {
		r.Append(render.RoleError, err.Error())
		return nil
	}

	id := r.BeginStream(render.RoleAssistant)
	var full strings.Builder
	for delta := range ch {
		full.WriteString(delta)
		r.StreamDelta(id, delta)
	}
	r.EndStream(id)

	_, err = store.AppendMessage(ctx, sessionID, render.RoleAssistant, full.String())
	return err
}

func resumeOrCreate(ctx context.Context, store transcript.Store) (*transcript.Session, error) {
	if chatResume != 0 {
		sessions, err := store.Sessions(ctx)
		if err != nil {
			return nil, err
		}
		for _, s := range sessions {
			if s.ID == chatResume {
				return s, nil
			}
		}
		return nil, fmt.Errorf("session %d not found", chatResume)
	}
	return store.CreateSession(ctx, time.Now().Format("2006-01-02 15:04"))
}
