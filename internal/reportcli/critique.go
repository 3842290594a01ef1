package reportcli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/stride/internal/config"
	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/pkg/logger"
)

// Critique sends one image file for form critique and prints the result.
// Remotely the frame is submitted as a job and polled until done.
func Critique(ctx context.Context, cfg *config.Config, opts Options, imagePath string, out io.Writer) error {
	image, err := readImage(imagePath)
	if err != nil {
		return err
	}

	if opts.URL == "" {
		svc, cleanup, err := buildLocal(ctx, cfg, opts)
		if err != nil {
			return err
		}
		defer cleanup()
		return write(out, map[string]string{"critique": svc.CritiqueFrame(ctx, image)}, opts.Compact)
	}

	job, err := submitAndWait(ctx, newHTTPClient(opts.URL, opts.Timeout), image, opts)
	if err != nil {
		return err
	}
	return write(out, job, opts.Compact)
}

// readImage returns the file as a data URL so the server sees its MIME type.
func readImage(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	typ := mime.TypeByExtension(filepath.Ext(path))
	if typ == "" {
		typ = "image/jpeg"
	}
	return "data:" + typ + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

func submitAndWait(ctx context.Context, c *HTTPClient, image string, opts Options) (model.CritiqueJob, error) {
	data, err := c.Post(ctx, "/api/v1/practice/frames", map[string]string{"image": image})
	if err != nil {
		return model.CritiqueJob{}, err
	}
	var ack struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &ack); err != nil || ack.ID == "" {
		return model.CritiqueJob{}, fmt.Errorf("%w: bad submit response", ErrRemote)
	}
	logger.Named("report").Debug(ctx, "critique submitted", logger.String("id", ack.ID))

	wait := opts.Wait
	if wait <= 0 {
		wait = DefaultWait
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		data, err := c.Get(ctx, "/api/v1/practice/frames/"+ack.ID)
		if err != nil {
			if ctx.Err() != nil {
				return model.CritiqueJob{}, fmt.Errorf("%w: job %s: %w", ErrCritiqueWait, ack.ID, err)
			}
			return model.CritiqueJob{}, err
		}
		var job model.CritiqueJob
		if err := json.Unmarshal(data, &job); err != nil {
			return model.CritiqueJob{}, fmt.Errorf("%w: decode job: %w", ErrRemote, err)
		}
		if job.Status == model.JobDone {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return model.CritiqueJob{}, fmt.Errorf("%w: job %s", ErrCritiqueWait, ack.ID)
		case <-ticker.C:
		}
	}
}
