package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+FileExt), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

const russianSample = `<?xml version="1.0" encoding="UTF-8"?>
<Language>
  <entry key="FormTitle">Запуск бота</entry>
  <entry key="buttonText">Запустить</entry>
</Language>`

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "Russian", russianSample)

	c, err := LoadCatalog(dir, "Russian")
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if c.Name != "Russian" {
		t.Errorf("Name = %q, want Russian", c.Name)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if v, ok := c.Lookup("FormTitle"); !ok || v != "Запуск бота" {
		t.Errorf("Lookup(FormTitle) = %q, %v", v, ok)
	}
}

func TestLoadCatalog_Missing(t *testing.T) {
	if _, err := LoadCatalog(t.TempDir(), "Klingon"); err == nil {
		t.Fatal("missing language file should be an error")
	}
}

func TestLoadCatalog_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "Broken", "<Language><entry key=")
	if _, err := LoadCatalog(dir, "Broken"); err == nil {
		t.Fatal("malformed XML should be an error")
	}
}

func TestTranslator_FallsBackToKey(t *testing.T) {
	tr := &Translator{}

	// No catalog at all: every key renders as itself.
	if got := tr.T("FormTitle"); got != "FormTitle" {
		t.Errorf("T without catalog = %q, want the key", got)
	}

	dir := t.TempDir()
	writeCatalogFile(t, dir, "Russian", russianSample)
	c, err := LoadCatalog(dir, "Russian")
	if err != nil {
		t.Fatal(err)
	}
	tr.SetCatalog(c)

	if got := tr.T("buttonText"); got != "Запустить" {
		t.Errorf("T(buttonText) = %q", got)
	}
	// Present catalog, absent key: still the key, never an error.
	if got := tr.T("NoSuchKey"); got != "NoSuchKey" {
		t.Errorf("T on absent key = %q, want the key", got)
	}
}

func TestTranslator_SwapCatalog(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "Russian", russianSample)
	writeCatalogFile(t, dir, "English", `<Language><entry key="FormTitle">Bot Launcher</entry></Language>`)

	tr := &Translator{}
	ru, _ := LoadCatalog(dir, "Russian")
	en, _ := LoadCatalog(dir, "English")

	tr.SetCatalog(ru)
	if got := tr.T("FormTitle"); got != "Запуск бота" {
		t.Errorf("T = %q", got)
	}

	tr.SetCatalog(en)
	if got := tr.T("FormTitle"); got != "Bot Launcher" {
		t.Errorf("T after swap = %q", got)
	}
	if tr.CatalogName() != "English" {
		t.Errorf("CatalogName = %q", tr.CatalogName())
	}

	tr.SetCatalog(nil)
	if got := tr.T("FormTitle"); got != "FormTitle" {
		t.Errorf("T after reset = %q, want the key", got)
	}
}

func TestTranslator_Snapshot(t *testing.T) {
	tr := &Translator{}
	snap := tr.Snapshot()
	if len(snap) != len(MessageKeys) {
		t.Fatalf("Snapshot has %d entries, want %d", len(snap), len(MessageKeys))
	}
	for _, key := range MessageKeys {
		if snap[key] != key {
			t.Errorf("Snapshot[%q] = %q, want raw key without catalog", key, snap[key])
		}
	}
}

func TestListLanguages(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "English", `<Language/>`)
	writeCatalogFile(t, dir, "Russian", `<Language/>`)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "Nested.xml"), 0755); err != nil {
		t.Fatal(err)
	}

	got := ListLanguages(dir)
	if len(got) != 2 {
		t.Fatalf("ListLanguages = %v, want 2 names", got)
	}
	found := map[string]bool{}
	for _, name := range got {
		found[name] = true
	}
	if !found["English"] || !found["Russian"] {
		t.Errorf("ListLanguages = %v", got)
	}
}

func TestListLanguages_MissingDir(t *testing.T) {
	if got := ListLanguages(filepath.Join(t.TempDir(), "nope")); len(got) != 0 {
		t.Errorf("missing dir should list no languages, got %v", got)
	}
}
