//go:build integration
// +build integration

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mattsolo1/grove-agile/pkg/models"
	"github.com/mattsolo1/grove-agile/pkg/service"
)

func TestIntegration(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	tmpDir := t.TempDir()
	config := &service.Config{
		VaultPath: filepath.Join(tmpDir, "vault"),
		DataDir:   filepath.Join(tmpDir, "data"),
		NoEditor:  true,
	}
	if err := os.MkdirAll(config.VaultPath, 0755); err != nil {
		t.Fatalf("Failed to create vault: %v", err)
	}

	svc, err := service.New(config, nil)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	defer svc.Close()

	t.Run("CreateHierarchy", func(t *testing.T) {
		if err := svc.Structure.CreateRootStructure(); err != nil {
			t.Fatalf("Failed to create root: %v", err)
		}
		if _, err := svc.Factory.CreateEpic("Login", "Allow sign-in"); err != nil {
			t.Fatalf("Failed to create epic: %v", err)
		}
		if _, err := svc.Factory.CreateStory("Form", "", "Login"); err != nil {
			t.Fatalf("Failed to create story: %v", err)
		}
		for _, p := range []string{"Low", "High", "Medium"} {
			if _, err := svc.Factory.CreateTask("Task "+p, "", "Login", "Form", p); err != nil {
				t.Fatalf("Failed to create task: %v", err)
			}
		}

		// files land where the layout says
		want := filepath.Join(config.VaultPath, models.DefaultRootPath, "Login", "Form", "Tasks", "Task High.md")
		if _, err := os.Stat(want); err != nil {
			t.Errorf("Expected task file at %s: %v", want, err)
		}
	})

	t.Run("Dashboard", func(t *testing.T) {
		root, err := svc.Dashboard(context.Background(), "Sort=Priority")
		if err != nil {
			t.Fatalf("Failed to build dashboard: %v", err)
		}
		if len(root.Children) != 1 || len(root.Children[0].Children) != 1 {
			t.Fatalf("Expected one epic with one story, got %+v", root)
		}
		var got []models.Priority
		for _, task := range root.Children[0].Children[0].Children {
			got = append(got, task.Priority)
		}
		want := []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow}
		if len(got) != len(want) {
			t.Fatalf("Expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Expected %v, got %v", want, got)
				break
			}
		}
		if root.Children[0].Description != "Allow sign-in" {
			t.Errorf("Expected epic description 'Allow sign-in', got %q", root.Children[0].Description)
		}
	})

	t.Run("RenameRoot", func(t *testing.T) {
		next := svc.Settings
		next.RootPath = "Work"
		if err := svc.UpdateSettings(next); err != nil {
			t.Fatalf("Failed to update settings: %v", err)
		}
		if _, err := os.Stat(filepath.Join(config.VaultPath, "Work", "Login", "Login.md")); err != nil {
			t.Errorf("Expected renamed root on disk: %v", err)
		}
		if got := svc.Structure.ListEpics(); len(got) != 1 || got[0] != "Login" {
			t.Errorf("Expected [Login] under the new root, got %v", got)
		}
	})
}
