package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brocat-app/brocat/internal/client/models"
	"github.com/brocat-app/brocat/internal/netx"
)

// AddTopic creates a top-level topic.
func (a *App) AddTopic(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: addtopic <name>")
		return nil
	}

	item, err := a.api.CreateMainTopic(ctx, strings.Join(args, " "), 0)
	if err != nil {
		fmt.Fprintln(a.out, "Create failed:", err)
		return err
	}
	fmt.Fprintf(a.out, "Created topic [%d] %s\n", item.ID, item.Name)
	return nil
}

// RenameTopic renames a top-level topic.
func (a *App) RenameTopic(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: renametopic <id> <name>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Bad topic id:", args[0])
		return nil
	}

	item, err := a.api.UpdateMainTopic(ctx, models.MainTopicItem{ID: id, Name: strings.Join(args[1:], " ")})
	if err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
		return err
	}
	fmt.Fprintf(a.out, "Renamed topic [%d] to %s\n", item.ID, item.Name)
	return nil
}

// DeleteTopic soft-deletes a top-level topic.
func (a *App) DeleteTopic(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: deltopic <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Bad topic id:", args[0])
		return nil
	}

	if err := a.api.DeleteMainTopic(ctx, id); err != nil {
		fmt.Fprintln(a.out, "Delete failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted topic", id)
	return nil
}

// AddSubTopic creates a subtopic under a topic.
func (a *App) AddSubTopic(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: addsub <topic-id> <name>")
		return nil
	}
	topicID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Bad topic id:", args[0])
		return nil
	}

	item, err := a.api.CreateSubTopic(ctx, strings.Join(args[1:], " "), topicID)
	if err != nil {
		fmt.Fprintln(a.out, "Create failed:", err)
		return err
	}
	fmt.Fprintf(a.out, "Created subtopic [%d] %s\n", item.ID, item.Name)
	return nil
}

// AddSubTitle creates a detail page under a subtopic.
func (a *App) AddSubTitle(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: addsubtitle <sub-id> <title>")
		return nil
	}
	subID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Bad subtopic id:", args[0])
		return nil
	}

	item, err := a.api.CreateSubTitle(ctx, strings.Join(args[1:], " "), subID)
	if err != nil {
		fmt.Fprintln(a.out, "Create failed:", err)
		return err
	}
	fmt.Fprintf(a.out, "Created page [%d] %s\n", item.ID, item.Title)
	return nil
}

// UploadImage asks the backend for a presigned URL, then PUTs the file to
// it directly.
func (a *App) UploadImage(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: upload <file>")
		return nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Cannot read file:", err)
		return err
	}

	presigned, err := a.api.PresignImageUpload(ctx, filepath.Base(args[0]))
	if err != nil {
		fmt.Fprintln(a.out, "Presign failed:", err)
		return err
	}

	if err := netx.UploadPresigned(ctx, presigned.URL, data); err != nil {
		fmt.Fprintln(a.out, "Upload failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Uploaded as", presigned.Key)
	return nil
}

// DownloadImage fetches a catalog image to a local file.
func (a *App) DownloadImage(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: download <url> <path>")
		return nil
	}

	url := a.api.AbsMediaURL(args[0])
	if err := netx.Download(ctx, url, args[1]); err != nil {
		fmt.Fprintln(a.out, "Download failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Saved to", args[1])
	return nil
}
