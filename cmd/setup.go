package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Long:  `Configure API credentials, create directories, and check for ffmpeg.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("🎬 Reddit TikTok Creator Setup"))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Checking ffmpeg", checkFFmpeg},
		{"Creating directories", createDirectories},
		{"Configuring environment", configureEnv},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	return nil
}

func checkFFmpeg() error {
	missing := false
	for _, binary := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(binary); err != nil {
			fmt.Println(warnStyle.Render(fmt.Sprintf("%s not found - install it before creating videos", binary)))
			missing = true
		}
	}
	if !missing {
		fmt.Println(successStyle.Render("✓ ffmpeg and ffprobe found"))
	}
	return nil
}

func createDirectories() error {
	dirs := []string{"background_videos", "output_videos"}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	fmt.Println(successStyle.Render("✓ Created directories"))
	return nil
}

func configureEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := configureReddit(env); err != nil {
		return err
	}
	if err := configureGroq(env); err != nil {
		return err
	}
	if err := configureTTS(env); err != nil {
		return err
	}
	if err := configureGoogleCloud(env); err != nil {
		return err
	}

	return writeEnvFile(env)
}

func configureReddit(env map[string]string) error {
	fmt.Println(infoStyle.Render(`
To create Reddit API credentials:
1. Go to https://www.reddit.com/prefs/apps
2. Click "create another app..." and choose "script"
3. Copy the client ID (under the app name) and secret
`))

	var clientID, clientSecret, username, password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Reddit Client ID").
				Value(&clientID).
				Validate(required("Reddit Client ID")),
			huh.NewInput().
				Title("Reddit Client Secret").
				EchoMode(huh.EchoModePassword).
				Value(&clientSecret).
				Validate(required("Reddit Client Secret")),
			huh.NewInput().
				Title("Reddit Username (optional, enables script auth)").
				Value(&username),
			huh.NewInput().
				Title("Reddit Password (optional)").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	env["REDDIT_CLIENT_ID"] = strings.TrimSpace(clientID)
	env["REDDIT_CLIENT_SECRET"] = strings.TrimSpace(clientSecret)
	if username = strings.TrimSpace(username); username != "" {
		env["REDDIT_USERNAME"] = username
		env["REDDIT_PASSWORD"] = strings.TrimSpace(password)
	}
	return nil
}

func configureGroq(env map[string]string) error {
	var apiKey string
	if err := huh.NewInput().
		Title("GROQ API Key").
		Description("https://console.groq.com/keys").
		Value(&apiKey).
		Validate(required("GROQ API Key")).
		Run(); err != nil {
		return err
	}
	env["GROQ_API_KEY"] = strings.TrimSpace(apiKey)
	return nil
}

func configureTTS(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup ElevenLabs TTS?").
		Description("Without a key, narration falls back to silent stub audio").
		Value(&setup).
		Run(); err != nil {
		return err
	}
	if !setup {
		return nil
	}

	var apiKey string
	if err := huh.NewInput().
		Title("ElevenLabs API Key").
		Description("https://elevenlabs.io/app/settings/api-keys").
		EchoMode(huh.EchoModePassword).
		Value(&apiKey).
		Run(); err != nil {
		return err
	}
	if apiKey = strings.TrimSpace(apiKey); apiKey != "" {
		env["TTS_API_KEY"] = apiKey
	}
	return nil
}

func configureGoogleCloud(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup Google Cloud?").
		Description("Optional: Secret Manager for credentials, GCS for background clips").
		Value(&setup).
		Run(); err != nil {
		return err
	}
	if !setup {
		return nil
	}

	var project, bucket string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Google Cloud Project ID").
				Value(&project),
			huh.NewInput().
				Title("GCS Bucket for background clips (optional)").
				Value(&bucket),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if project = strings.TrimSpace(project); project != "" {
		env["GOOGLE_CLOUD_PROJECT"] = project
		if err := enableAPIs(project); err != nil {
			fmt.Println(warnStyle.Render(fmt.Sprintf("API enablement skipped: %v", err)))
		}
	}
	if bucket = strings.TrimSpace(bucket); bucket != "" {
		env["GCS_BUCKET"] = bucket
	}
	return nil
}

func enableAPIs(project string) error {
	if _, err := exec.LookPath("gcloud"); err != nil {
		return fmt.Errorf("gcloud CLI not found")
	}
	return runWithSpinner("Enabling APIs", func() error {
		return exec.Command("gcloud", "services", "enable",
			"secretmanager.googleapis.com", "storage.googleapis.com",
			"--project", project).Run()
	})
}

func writeEnvFile(env map[string]string) error {
	f, err := os.Create(".env")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	order := []string{
		"REDDIT_CLIENT_ID",
		"REDDIT_CLIENT_SECRET",
		"REDDIT_USERNAME",
		"REDDIT_PASSWORD",
		"GROQ_API_KEY",
		"TTS_API_KEY",
		"GOOGLE_CLOUD_PROJECT",
		"GCS_BUCKET",
	}

	for _, key := range order {
		if val, ok := env[key]; ok && val != "" {
			_, _ = fmt.Fprintf(f, "%s=%s\n", key, val)
		}
	}

	fmt.Println(successStyle.Render("✓ Created .env file"))
	printNextSteps()
	return nil
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(titleStyle.Render("Next steps:"))
	fmt.Println("  1. Add background clips to: background_videos/")
	fmt.Println("  2. Check connectivity: reddit-tiktok-creator test")
	fmt.Println("  3. Create a video: reddit-tiktok-creator create")
	fmt.Println("  4. Or run on a schedule: reddit-tiktok-creator run")
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func runWithSpinner(title string, fn func() error) error {
	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ " + title))
	return nil
}
