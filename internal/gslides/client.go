// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gslides

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/slides/v1"

	"github.com/pdiddy/lyricaster/pkg/types"
)

// ErrMissingCredentials means no Google credentials are configured. The
// slides command falls back to terminal preview when it sees this.
var ErrMissingCredentials = errors.New("google credentials not configured")

// Client talks to the Google Slides and Drive APIs.
type Client struct {
	slides   *slides.Service
	drive    *drive.Service
	folderID string
}

// New builds a Client from the slides configuration. Credentials come from
// a service-account or authorized-user JSON file; with none configured New
// returns ErrMissingCredentials.
func New(ctx context.Context, cfg types.SlidesConfig) (*Client, error) {
	if cfg.CredentialsFile == "" {
		return nil, ErrMissingCredentials
	}
	credJSON, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials %s: %w", cfg.CredentialsFile, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, credJSON,
		slides.PresentationsScope, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	slidesSvc, err := slides.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating slides service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}

	return &Client{slides: slidesSvc, drive: driveSvc, folderID: cfg.FolderID}, nil
}

// DefaultTitle names an untitled deck after the current time.
func DefaultTitle() string {
	return "Lyricaster - " + time.Now().Format("2006-01-02 15:04")
}

// Generate creates a presentation holding deck and returns its edit URL.
// The deck replaces the default blank slide. A configured Drive folder is
// best effort: the presentation exists either way, so a failed move only
// warns on w.
func (c *Client) Generate(ctx context.Context, title string, deck []types.Slide, w io.Writer) (string, error) {
	if title == "" {
		title = DefaultTitle()
	}

	pres, err := c.slides.Presentations.Create(&slides.Presentation{Title: title}).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating presentation: %w", err)
	}

	if err := c.deleteDefaultSlide(ctx, pres.PresentationId); err != nil {
		return "", err
	}

	reqs := BuildRequests(deck)
	if len(reqs) > 0 {
		_, err = c.slides.Presentations.BatchUpdate(pres.PresentationId,
			&slides.BatchUpdatePresentationRequest{Requests: reqs}).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("populating presentation: %w", err)
		}
	}

	if c.folderID != "" {
		if err := c.moveToFolder(ctx, pres.PresentationId); err != nil {
			fmt.Fprintf(w, "warning: could not move to folder %s: %v\n", c.folderID, err)
		}
	}

	return PresentationURL(pres.PresentationId), nil
}

// deleteDefaultSlide removes the blank slide every new presentation starts
// with. Done before the deck is added so slide 0 is safe to delete.
func (c *Client) deleteDefaultSlide(ctx context.Context, presentationID string) error {
	pres, err := c.slides.Presentations.Get(presentationID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("fetching presentation: %w", err)
	}
	if len(pres.Slides) == 0 {
		return nil
	}

	_, err = c.slides.Presentations.BatchUpdate(presentationID,
		&slides.BatchUpdatePresentationRequest{
			Requests: []*slides.Request{{
				DeleteObject: &slides.DeleteObjectRequest{ObjectId: pres.Slides[0].ObjectId},
			}},
		}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("deleting default slide: %w", err)
	}
	return nil
}

// moveToFolder reparents the presentation into the configured Drive folder.
func (c *Client) moveToFolder(ctx context.Context, fileID string) error {
	f, err := c.drive.Files.Get(fileID).Fields("parents").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("fetching file parents: %w", err)
	}

	_, err = c.drive.Files.Update(fileID, nil).
		AddParents(c.folderID).
		RemoveParents(strings.Join(f.Parents, ",")).
		Fields("id", "parents").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("updating parents: %w", err)
	}
	return nil
}

// PresentationURL is the edit URL for a presentation ID.
func PresentationURL(id string) string {
	return "https://docs.google.com/presentation/d/" + id + "/edit"
}
