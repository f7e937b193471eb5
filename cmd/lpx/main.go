// Command lpx is a dev CLI for lexipost maintenance and debugging tasks.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/pkg/browser"

	browseropts "github.com/yuhaochen/lexipost/internal/browser"
	"github.com/yuhaochen/lexipost/internal/config"
	"github.com/yuhaochen/lexipost/internal/generator/providers"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ollama-check":
		runOllamaCheck()
	case "bot-test":
		runBotTest()
	case "open":
		if len(os.Args) < 3 {
			fmt.Println("Usage: lpx open <config|data|output>")
			os.Exit(1)
		}
		runOpen(os.Args[2])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: lpx <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  ollama-check   Verify the local Ollama server is reachable")
	fmt.Println("  bot-test       Open bot.sannysoft.com to audit browser fingerprint")
	fmt.Println("  open config    Open config file in default editor")
	fmt.Println("  open data      Open data directory in file explorer")
	fmt.Println("  open output    Open output directory in file explorer")
}

func runOllamaCheck() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := providers.CheckOllama(ctx, cfg.Generation.OllamaURL); err != nil {
		log.Fatalf("Ollama not reachable at %s: %v", cfg.Generation.OllamaURL, err)
	}
	fmt.Printf("Ollama is up at %s (model: %s)\n", cfg.Generation.OllamaURL, cfg.Generation.Model)
}

func runBotTest() {
	log.Println("Opening bot.sannysoft.com with stealth browser options...")

	opts := browseropts.Options(false) // non-headless so you can see it

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	go func() {
		err := chromedp.Run(ctx,
			chromedp.Navigate("https://bot.sannysoft.com"),
		)
		if err != nil {
			log.Printf("Failed to navigate: %v", err)
		}
	}()

	fmt.Println("Press Enter to end program...")
	fmt.Scanln()

	log.Println("Done.")
}

func runOpen(target string) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	var path string
	switch target {
	case "config":
		path, err = config.ConfigPath()
	case "data":
		path, err = config.DataDir()
	case "output":
		path = cfg.Publish.OutputDir
	default:
		fmt.Printf("Unknown target: %s\n", target)
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("Failed to get path: %v", err)
	}

	if err := browser.OpenFile(path); err != nil {
		log.Fatalf("Failed to open: %v", err)
	}
}
