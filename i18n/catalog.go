package i18n

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Language resource files live in a fixed folder beside the executable, one
// file per language. The file's base name is the selectable language
// identifier.
const (
	DirName = "Languages"
	FileExt = ".xml"
)

// Catalog is one language's key -> display-text dictionary.
type Catalog struct {
	Name    string
	entries map[string]string
}

// catalogFile mirrors the on-disk dictionary:
//
//	<Language>
//	  <entry key="FormTitle">Telegram Bot</entry>
//	</Language>
type catalogFile struct {
	XMLName xml.Name       `xml:"Language"`
	Entries []catalogEntry `xml:"entry"`
}

type catalogEntry struct {
	Key  string `xml:"key,attr"`
	Text string `xml:",chardata"`
}

// LoadCatalog reads the dictionary for the named language from dir.
// A missing file is an error; the caller decides how to degrade.
func LoadCatalog(dir, name string) (*Catalog, error) {
	path := filepath.Join(dir, name+FileExt)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("language file %q: %w", path, err)
	}

	var cf catalogFile
	if err := xml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("language file %q: %w", path, err)
	}

	entries := make(map[string]string, len(cf.Entries))
	for _, e := range cf.Entries {
		if e.Key == "" {
			continue
		}
		entries[e.Key] = strings.TrimSpace(e.Text)
	}
	return &Catalog{Name: name, entries: entries}, nil
}

// Lookup returns the display text for key and whether it was present.
func (c *Catalog) Lookup(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.entries[key]
	return v, ok
}

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// ListLanguages enumerates selectable languages: the base names of the
// resource files in dir, in directory order. A missing folder yields an
// empty list, not an error.
func ListLanguages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), FileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, filepath.Ext(name)))
	}
	return names
}
