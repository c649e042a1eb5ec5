package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zhouzirui/questme/backend/internal/handler/classify"
	"github.com/zhouzirui/questme/backend/internal/service/tagging"
)

func main() {
	lang := flag.String("lang", "ja", "label language code, e.g. ja, en-US")
	emotion := flag.String("emotion", "neutral", "emotion recorded on each entry")
	override := flag.String("override", "", "report this emotion instead, with override confidence")
	speaker := flag.String("speaker", tagging.DefaultSpeaker, "speaker recorded on each entry")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [text ...]\n\nClassifies each argument, or each stdin line when no arguments are given.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	tagger, err := tagging.NewService(context.Background(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "classify: %v\n", err)
		os.Exit(1)
	}

	opts := options{lang: *lang, emotion: *emotion, override: *override, speaker: *speaker}
	if err := run(context.Background(), tagger, opts, flag.Args(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "classify: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	lang     string
	emotion  string
	override string
	speaker  string
}

// run classifies texts, or every non-blank line of in when texts is empty,
// writing one JSON document per line to out.
func run(ctx context.Context, tagger *tagging.Service, opts options, texts []string, in io.Reader, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	classifyOne := func(text string) error {
		outcome, err := tagger.Tag(ctx, tagging.Request{
			Speaker:         opts.speaker,
			Text:            text,
			Emotion:         opts.emotion,
			OverrideEmotion: opts.override,
		})
		if err != nil {
			return err
		}
		return enc.Encode(classify.NewResponse(outcome, opts.lang))
	}

	if len(texts) > 0 {
		for _, text := range texts {
			if err := classifyOne(text); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := classifyOne(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
