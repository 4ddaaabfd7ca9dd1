package domain

import "sort"

// DefaultPreset is applied when a project has no configuration file.
const DefaultPreset = "vite-react"

// Preset is a built-in rule configuration for a common project layout.
type Preset struct {
	Name        string
	Description string
	Manifest    string
	Categories  []CategorySpec
	Guidance    string
}

var presets = map[string]Preset{
	"vite-react": {
		Name:        "vite-react",
		Description: "Vite + React + Tailwind single-page app backed by Supabase",
		Manifest:    DefaultManifest,
		Categories: []CategorySpec{
			{Name: "Project Files", Rules: []RuleSpec{
				{File: "package.json", Label: "Package configuration"},
				{File: "vite.config.js", Label: "Vite configuration"},
				{File: "tailwind.config.js", Label: "Tailwind CSS config"},
				{File: "index.html", Label: "Main HTML file"},
				{File: "src/main.jsx", Label: "React entry point"},
				{File: "src/App.jsx", Label: "Main App component"},
				{File: "src/index.css", Label: "Global styles"},
				{File: "database-setup.sql", Label: "Database schema"},
				{File: ".env.example", Label: "Environment template"},
				{File: "README.md", Label: "Documentation"},
				{File: ".github/workflows/deploy.yml", Label: "GitHub Actions"},
			}},
			{Name: "Directories", Rules: []RuleSpec{
				{Dir: "src/components", Label: "UI Components"},
				{Dir: "src/pages", Label: "Page Components"},
				{Dir: "src/services", Label: "API Services"},
				{Dir: "src/contexts", Label: "React Contexts"},
			}},
			{Name: "Dependencies", Rules: []RuleSpec{
				{Dependency: "react"},
				{Dependency: "react-dom"},
				{Dependency: "react-router-dom"},
				{Dependency: "@supabase/supabase-js"},
				{Dependency: "lucide-react"},
				{Dependency: "date-fns"},
				{Dependency: "react-hot-toast"},
			}},
			{Name: "Dev Dependencies", Rules: []RuleSpec{
				{DevDependency: "@vitejs/plugin-react"},
				{DevDependency: "tailwindcss"},
				{DevDependency: "autoprefixer"},
				{DevDependency: "postcss"},
				{DevDependency: "vite"},
			}},
			{Name: "Components", Rules: []RuleSpec{
				{File: "src/components/EventCard.jsx"},
				{File: "src/components/SearchBar.jsx"},
				{File: "src/components/Navbar.jsx"},
				{File: "src/components/LoadingSpinner.jsx"},
				{File: "src/components/SnakeGame.jsx"},
			}},
			{Name: "Pages", Rules: []RuleSpec{
				{File: "src/pages/HomePage.jsx"},
				{File: "src/pages/LoginPage.jsx"},
				{File: "src/pages/SignUpPage.jsx"},
				{File: "src/pages/DashboardPage.jsx"},
				{File: "src/pages/SearchPage.jsx"},
				{File: "src/pages/AdminPage.jsx"},
				{File: "src/pages/ProfilePage.jsx"},
			}},
			{Name: "Services", Rules: []RuleSpec{
				{File: "src/services/supabase.js"},
				{File: "src/services/eventApi.js"},
			}},
			{Name: "Contexts", Rules: []RuleSpec{
				{File: "src/contexts/AuthContext.jsx"},
			}},
		},
		Guidance: viteReactGuidance,
	},
}

const viteReactGuidance = `Next steps
  1. Use Node.js 18 LTS (nvm install 18 && nvm use 18).
  2. Install and start the dev server: npm install && npm run dev
     then open http://localhost:5173
  3. Copy .env.example to .env and fill in the Supabase and Ticketmaster keys.
     Variables must start with VITE_; restart the dev server after changes.
  4. Run database-setup.sql in the Supabase SQL editor.
  5. Build and deploy with npm run build && npm run deploy, or push to main
     with repository secrets configured for the GitHub Actions workflow.

Troubleshooting
  - Port 5173 in use: npm run dev -- --port 3000
  - Permission errors: npm cache clean --force, or run npx vite
  - Database errors: verify the Supabase URL and key and that RLS policies exist
  - Deploy errors: check the Actions logs and the base path in vite.config.js
`

// LookupPreset returns the named built-in preset.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames returns all built-in preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
