package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Init creates the skeleton of an application the scaffold generator can work in
func Init(projectDir string) (*Project, error) {
	// 1. Create project directory
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create project directory: %w", err)
	}

	// 2. Create directory structure
	if err := createDirectoryStructure(projectDir); err != nil {
		return nil, err
	}

	// 3. Create initial files
	if err := createInitialFiles(projectDir, filepath.Base(projectDir)); err != nil {
		return nil, err
	}

	return Open(projectDir), nil
}

func createDirectoryStructure(projectDir string) error {
	// Create standard directories
	dirs := []string{
		"app/controllers",
		"app/helpers",
		"app/models",
		"app/views/layouts",
		"config",
		"db/migrate",
		"public",
	}

	for _, dir := range dirs {
		path := filepath.Join(projectDir, dir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

func createInitialFiles(projectDir, projectName string) error {
	files := []struct {
		path    string
		content string
	}{
		{"config/routes.rb", routesContent},
		{"config/database.yml", databaseContent(projectName)},
		{"app/controllers/application_controller.rb", applicationControllerContent},
		{"app/helpers/application_helper.rb", applicationHelperContent},
	}

	for _, f := range files {
		path := filepath.Join(projectDir, f.path)

		// Never clobber an existing application
		if _, err := os.Stat(path); err == nil {
			continue
		}

		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", f.path, err)
		}
	}

	return nil
}

const routesContent = `ActionController::Routing::Routes.draw do |map|

end
`

const applicationControllerContent = `class ApplicationController < ActionController::Base
  helper :all
  protect_from_forgery
end
`

const applicationHelperContent = `module ApplicationHelper
end
`

func databaseContent(projectName string) string {
	name := strings.ReplaceAll(projectName, "-", "_")
	return fmt.Sprintf(`development:
  adapter: sqlite3
  database: db/development.sqlite3

test:
  adapter: sqlite3
  database: db/test.sqlite3

production:
  adapter: sqlite3
  database: db/%s_production.sqlite3
`, name)
}
