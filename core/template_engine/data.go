package template_engine

import (
	"time"

	"github.com/tristendillon/importfix/core/classification"
	"github.com/tristendillon/importfix/core/config"
)

type CategoryGroup struct {
	Folder     string
	Components []string
}

// ConfigTemplateData feeds TEMPLATES.INIT_CONFIG.
type ConfigTemplateData struct {
	Timestamp  time.Time
	Config     *config.Config
	Categories []CategoryGroup
}

func NewConfigTemplateData(cfg *config.Config, table *classification.Table) ConfigTemplateData {
	groups := table.Groups()

	data := ConfigTemplateData{Timestamp: time.Now(), Config: cfg}
	for _, folder := range table.Folders() {
		group := CategoryGroup{Folder: string(folder)}
		for _, name := range groups[folder] {
			group.Components = append(group.Components, string(name))
		}
		data.Categories = append(data.Categories, group)
	}
	return data
}
