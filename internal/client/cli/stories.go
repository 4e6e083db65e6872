package cli

import (
	"context"
	"fmt"

	"storysync/internal/client/models"
)

// List fetches the first page of stories, resetting the pagination state.
// When the network is down, the locally stored view is shown instead.
func (a *App) List(ctx context.Context) error {
	a.page = 1
	a.shown = nil
	a.seenIds = make(map[string]struct{})
	return a.fetchPage(ctx)
}

// More fetches the next page and appends it to the already shown list.
func (a *App) More(ctx context.Context) error {
	if a.page == 0 {
		return a.List(ctx)
	}
	if !a.hasMore {
		printlnFn("No more stories")
		return nil
	}
	a.page++
	return a.fetchPage(ctx)
}

func (a *App) fetchPage(ctx context.Context) error {
	res, err := a.stories.List(ctx, a.page, a.config.PageSize, true)
	if err != nil {
		return err
	}
	a.hasMore = res.HasMore

	// a refreshed page can repeat stories already shown
	added := 0
	for _, s := range res.Stories {
		if _, ok := a.seenIds[s.Id]; ok {
			continue
		}
		a.seenIds[s.Id] = struct{}{}
		a.shown = append(a.shown, s)
		printlnFn(renderStory(s))
		added++
	}

	if res.FromCache {
		printlnFn("(offline: showing locally stored stories)")
	}
	if added == 0 {
		printlnFn("No new stories")
	}
	return nil
}

// Show displays a single story, preferring the locally saved copy.
func (a *App) Show(ctx context.Context, id string) error {
	story, err := a.stories.Detail(ctx, id)
	if err != nil {
		return err
	}

	printlnFn(renderStory(*story))
	printlnFn("  " + story.Description)
	if img, err := a.store.GetImage(ctx, story.PhotoURL); err == nil && img != nil {
		printlnFn(fmt.Sprintf("  photo cached offline (%d bytes, %s)", len(img.Data), img.ContentType))
	} else if story.PhotoURL != "" {
		printlnFn("  photo: " + story.PhotoURL)
	}
	return nil
}

// Save stores a story, photo included, for offline reading.
func (a *App) Save(ctx context.Context, id string) error {
	if err := a.stories.Save(ctx, id); err != nil {
		return err
	}
	printlnFn("Story saved for offline reading")
	return nil
}

// Unsave removes a story and its cached photo from offline storage.
func (a *App) Unsave(ctx context.Context, id string) error {
	if err := a.stories.Unsave(ctx, id); err != nil {
		return err
	}
	printlnFn("Story removed from offline storage")
	return nil
}

// Saved lists the stories stored for offline reading.
func (a *App) Saved(ctx context.Context) error {
	list, err := a.stories.Saved(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No stories saved for offline reading")
		return nil
	}
	for _, s := range list {
		printlnFn(renderStory(s))
	}
	return nil
}

// Clear wipes offline stories and cached photos. Queued submissions are kept;
// they still need to reach the server.
func (a *App) Clear(ctx context.Context) error {
	if err := a.stories.ClearOffline(ctx); err != nil {
		return err
	}
	printlnFn("Offline data cleared")
	return nil
}

func renderStory(s models.Story) string {
	line := fmt.Sprintf("[%s] %s - %s", s.Id, s.Name, firstLine(s.Description, 60))
	if s.HasLocation() {
		line += fmt.Sprintf(" (%.5f, %.5f)", *s.Lat, *s.Lon)
	}
	return line
}

func firstLine(s string, n int) string {
	for i, r := range s {
		if r == '\n' {
			s = s[:i]
			break
		}
	}
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
