package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/jo-hoe/repolizer/internal/backend/icons"
)

var cli struct {
	Source string `help:"Path to the 512x512 source icon." default:"static/icons/icon-512x512.png"`
	Out    string `help:"Directory the generated icons are written to." default:"static/icons"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("genicons"),
		kong.Description("Generates the PWA icon set from a single source image."),
	)

	if _, err := os.Stat(cli.Source); err != nil {
		fmt.Printf("Source icon not found at %s\n", cli.Source)
		fmt.Println("Please place a 512x512 PNG icon at this location and try again.")
		os.Exit(1)
	}

	src, err := icons.LoadSource(cli.Source)
	if err != nil {
		fmt.Printf("Failed to load source icon: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Generating PWA icons...")
	err = icons.Generate(src, cli.Out, func(target icons.Target, _ string) {
		fmt.Printf("Created %s (%dx%d)\n", target.Name, target.Size, target.Size)
	})
	if err != nil {
		fmt.Printf("Failed to generate icons: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("PWA icon generation complete!")
}
