package config

import "strings"

func (c *Config) normalize() error {
	c.Chat.Name = strings.TrimSpace(c.Chat.Name)
	c.Session.DevToolsURL = strings.TrimRight(strings.TrimSpace(c.Session.DevToolsURL), "/")
	c.Output.RawFile = strings.TrimSpace(c.Output.RawFile)
	c.Output.FilteredSuffix = strings.TrimSpace(c.Output.FilteredSuffix)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)

	for _, field := range []*string{
		&c.Session.DataDir,
		&c.Output.Dir,
		&c.Logging.Dir,
		&c.Archive.Path,
	} {
		if strings.TrimSpace(*field) == "" {
			continue
		}
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}
