package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msomdec/employee-pass/internal/config"
	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/repository/memory"
	"github.com/msomdec/employee-pass/internal/repository/sqlite"
	"github.com/msomdec/employee-pass/internal/service"
	"golang.org/x/crypto/bcrypt"
)

func photoURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 90, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	url, err := service.EncodePhoto(buf.Bytes())
	if err != nil {
		t.Fatalf("EncodePhoto: %v", err)
	}
	return url
}

// seedSQLite writes list to a fresh sqlite file and points the environment at it.
func seedSQLite(t *testing.T, list []domain.Employee) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "passes.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("sqlite.New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := service.SaveCollection(context.Background(), db.Slots(), list); err != nil {
		t.Fatalf("SaveCollection: %v", err)
	}
	db.Close()

	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STORAGE_DRIVER", config.DriverSQLite)
	t.Setenv("DATABASE_PATH", dbPath)
}

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOpenStorage_Memory(t *testing.T) {
	cfg := config.Default()
	cfg.StorageDriver = config.DriverMemory

	slots, db, err := openStorage(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openStorage: %v", err)
	}
	defer db.Close()

	if err := slots.Put(context.Background(), domain.EmployeeSlot, []byte("[]")); err != nil {
		t.Fatalf("Put: %v", err)
	}
}

func TestOpenStorage_SQLiteMigrates(t *testing.T) {
	cfg := config.Default()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "passes.db")

	slots, db, err := openStorage(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openStorage: %v", err)
	}
	defer db.Close()

	if _, err := slots.Get(context.Background(), domain.EmployeeSlot); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from empty store, got %v", err)
	}
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.StorageDriver = "etcd"

	if _, _, err := openStorage(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestOpenServeStorage_FallsBackToMemory(t *testing.T) {
	cfg := config.Default()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "missing", "passes.db")

	slots, db := openServeStorage(context.Background(), cfg)
	defer db.Close()

	if _, ok := db.(*memory.Store); !ok {
		t.Fatalf("expected in-memory fallback, got %T", db)
	}

	// The fallback store must still serve the collection for this process.
	store := service.NewEmployeeStore(context.Background(), slots)
	reg := service.NewRegistrationService(store)
	var photo bytes.Buffer
	if err := png.Encode(&photo, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if _, err := reg.Register(context.Background(), service.RegistrationInput{
		Name: "Jane Doe", EmployeeID: "EMP-001", Photo: photo.Bytes(),
	}); err != nil {
		t.Fatalf("Register on fallback store: %v", err)
	}
	list, err := service.LoadCollection(context.Background(), slots)
	if err != nil {
		t.Fatalf("LoadCollection: %v", err)
	}
	if len(list) != 1 || list[0].EmployeeID != "EMP-001" {
		t.Fatalf("expected the registration to reach the fallback store, got %+v", list)
	}
}

func TestOpenServeStorage_UsesConfiguredBackend(t *testing.T) {
	cfg := config.Default()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "passes.db")

	_, db := openServeStorage(context.Background(), cfg)
	defer db.Close()

	if _, ok := db.(*sqlite.DB); !ok {
		t.Fatalf("expected sqlite backend, got %T", db)
	}
}

func TestVerifierFor(t *testing.T) {
	cfg := config.Default()
	cfg.AdminPassword = "admin123"
	if !verifierFor(cfg).Verify("admin123") {
		t.Fatal("plaintext verifier rejected the configured password")
	}

	hash, err := service.HashSecret("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}
	cfg.AdminPasswordHash = hash
	v := verifierFor(cfg)
	if v.Verify("admin123") {
		t.Fatal("hash should take precedence over the plaintext password")
	}
	if !v.Verify("s3cret") {
		t.Fatal("bcrypt verifier rejected the hashed password")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := loadDotEnv(filepath.Join(dir, "nope.env")); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}

	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("PASSGEN_DOTENV_CHECK=loaded\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("PASSGEN_DOTENV_CHECK") })

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
	if got := os.Getenv("PASSGEN_DOTENV_CHECK"); got != "loaded" {
		t.Fatalf("expected loaded, got %q", got)
	}
}

func TestListCmd(t *testing.T) {
	seedSQLite(t, []domain.Employee{
		{ID: "EMP-001-1", Name: "Jane Doe", EmployeeID: "EMP-001", RegistrationDate: "3/5/2024"},
		{ID: "EMP-002-2", Name: "John Roe", EmployeeID: "EMP-002", RegistrationDate: "3/6/2024"},
	})

	out, err := runCmd(t, "", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"EMPLOYEE ID", "Jane Doe", "EMP-002", "3/6/2024", "2 employee(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestListCmd_Empty(t *testing.T) {
	seedSQLite(t, nil)

	out, err := runCmd(t, "", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No employees registered yet.") {
		t.Fatalf("expected empty message, got:\n%s", out)
	}
}

func TestExportCmd(t *testing.T) {
	seedSQLite(t, []domain.Employee{
		{ID: "EMP-001-1", Name: "Jane Doe", EmployeeID: "EMP-001", Photo: photoURL(t), RegistrationDate: "3/5/2024"},
	})
	outDir := filepath.Join(t.TempDir(), "passes")

	if _, err := runCmd(t, "", "export", "EMP-001-1", "-o", outDir); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "EMP-001-pass.jpg"))
	if err != nil {
		t.Fatalf("read exported pass: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	if b := img.Bounds(); b.Dx() != service.PassWidth || b.Dy() != service.PassHeight {
		t.Fatalf("unexpected pass size %v", b)
	}
}

func TestExportCmd_UnknownID(t *testing.T) {
	seedSQLite(t, nil)

	_, err := runCmd(t, "", "export", "ghost", "-o", t.TempDir())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExportCmd_EmployeeIDCannotEscapeOutDir(t *testing.T) {
	seedSQLite(t, []domain.Employee{
		{ID: "x-1", Name: "Mallory", EmployeeID: "../../escaped", Photo: photoURL(t), RegistrationDate: "3/5/2024"},
	})
	root := t.TempDir()
	outDir := filepath.Join(root, "a", "passes")

	if _, err := runCmd(t, "", "export", "x-1", "-o", outDir); err != nil {
		t.Fatalf("export: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "escaped-pass.jpg")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pass was written outside the output directory (stat err %v)", err)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output directory: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != ".._.._escaped-pass.jpg" {
		t.Fatalf("expected a single sanitized file in the output directory, got %v", entries)
	}
}

func TestDiskFilename(t *testing.T) {
	tests := []struct {
		employeeID string
		want       string
	}{
		{"EMP-001", "EMP-001-pass.jpg"},
		{"../x", ".._x-pass.jpg"},
		{`..\x`, ".._x-pass.jpg"},
		{"/etc/cron.d/job", "_etc_cron.d_job-pass.jpg"},
		{"a/b", "a_b-pass.jpg"},
	}
	for _, tc := range tests {
		got := diskFilename(domain.Employee{EmployeeID: tc.employeeID})
		if got != tc.want {
			t.Errorf("diskFilename(%q) = %q, want %q", tc.employeeID, got, tc.want)
		}
		if !filepath.IsLocal(got) || filepath.Base(got) != got {
			t.Errorf("diskFilename(%q) = %q is not a single local element", tc.employeeID, got)
		}
	}
}

func TestHashPasswordCmd_FromPipe(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	out, err := runCmd(t, "hunter2\n", "hash-password", "--cost", "4")
	if err != nil {
		t.Fatalf("hash-password: %v", err)
	}
	hash := strings.TrimSpace(out)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")); err != nil {
		t.Fatalf("printed hash does not match: %v", err)
	}
}

func TestHashPasswordCmd_Rejects(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	if _, err := runCmd(t, "\n", "hash-password"); !errors.Is(err, errEmptyPassword) {
		t.Fatalf("expected errEmptyPassword, got %v", err)
	}
	if _, err := runCmd(t, "pw\n", "hash-password", "--cost", "99"); err == nil {
		t.Fatal("expected error for out-of-range cost")
	}
}
