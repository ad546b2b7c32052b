package classification

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ComponentName is the bare identifier of a relocatable UI module, e.g. "Dashboard".
type ComponentName string

// CategoryFolder is the folder a component was moved into, e.g. "work".
type CategoryFolder string

type Entry struct {
	Name   ComponentName
	Folder CategoryFolder
}

// Table maps each component to exactly one folder. It is immutable once built.
type Table struct {
	entries map[ComponentName]CategoryFolder
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// New builds a table from a folder-grouped listing. A component may appear
// only once across all folders.
func New(groups map[CategoryFolder][]ComponentName) (*Table, error) {
	t := &Table{entries: make(map[ComponentName]CategoryFolder)}

	folders := make([]CategoryFolder, 0, len(groups))
	for folder := range groups {
		folders = append(folders, folder)
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i] < folders[j] })

	for _, folder := range folders {
		if err := validateFolder(folder); err != nil {
			return nil, err
		}
		for _, name := range groups[folder] {
			if !identifierPattern.MatchString(string(name)) {
				return nil, fmt.Errorf("invalid component name %q in folder %q", name, folder)
			}
			if existing, ok := t.entries[name]; ok {
				if existing == folder {
					return nil, fmt.Errorf("component %q listed twice in folder %q", name, folder)
				}
				return nil, fmt.Errorf("component %q classified into both %q and %q", name, existing, folder)
			}
			t.entries[name] = folder
		}
	}

	return t, nil
}

func validateFolder(folder CategoryFolder) error {
	f := string(folder)
	switch {
	case f == "":
		return fmt.Errorf("category folder cannot be empty")
	case strings.HasPrefix(f, "/"), strings.HasSuffix(f, "/"):
		return fmt.Errorf("category folder %q must be a relative folder name", f)
	case strings.ContainsAny(f, "'\"`\\ \t\r\n"):
		return fmt.Errorf("category folder %q contains quotes or whitespace", f)
	}
	for _, part := range strings.Split(f, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("category folder %q has an invalid path segment", f)
		}
	}
	return nil
}

// Lookup returns the folder for name. A missing entry is not an error: the
// table only lists components known to have moved.
func (t *Table) Lookup(name ComponentName) (CategoryFolder, bool) {
	folder, ok := t.entries[name]
	return folder, ok
}

func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) Names() []ComponentName {
	names := make([]ComponentName, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func (t *Table) Folders() []CategoryFolder {
	seen := make(map[CategoryFolder]bool)
	var folders []CategoryFolder
	for _, folder := range t.entries {
		if !seen[folder] {
			seen[folder] = true
			folders = append(folders, folder)
		}
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i] < folders[j] })
	return folders
}

// Entries returns every mapping ordered by component name.
func (t *Table) Entries() []Entry {
	names := t.Names()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Folder: t.entries[name]})
	}
	return entries
}

// Groups returns the folder-grouped form accepted by New.
func (t *Table) Groups() map[CategoryFolder][]ComponentName {
	groups := make(map[CategoryFolder][]ComponentName)
	for _, e := range t.Entries() {
		groups[e.Folder] = append(groups[e.Folder], e.Name)
	}
	return groups
}
