// ABOUTME: Terminal input helpers for the moodlog CLI
// ABOUTME: Hidden password entry plus plain line prompts

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptPassword reads a password with echo disabled.
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	defer fmt.Println()

	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(secret), nil
}

// promptLine reads one trimmed line from stdin.
func promptLine(r *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
