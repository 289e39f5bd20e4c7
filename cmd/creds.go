package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tonhe/flo/internal/config"
	"github.com/tonhe/flo/internal/creds"
	"github.com/tonhe/flo/internal/dashboard"
	"github.com/tonhe/flo/internal/engine"
	"golang.org/x/term"
)

const credsUsage = "Usage: flo creds <list|add|remove|test>"

func credsCmd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, credsUsage)
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		credsList()
	case "add":
		credsAdd()
	case "remove":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: flo creds remove NAME")
			os.Exit(1)
		}
		credsRemove(args[1])
	case "test":
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: flo creds test NAME HOST[:PORT]")
			os.Exit(1)
		}
		credsTest(args[1], args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown creds command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, credsUsage)
		os.Exit(1)
	}
}

// OpenVault opens the credential vault. A vault created without a password
// opens silently; otherwise the password comes from FLO_MASTER_KEY or a
// prompt.
func OpenVault() (*creds.Vault, error) {
	path, err := config.GetVaultPath()
	if err != nil {
		return nil, err
	}
	if err := config.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create config directories: %w", err)
	}

	if key := os.Getenv("FLO_MASTER_KEY"); key != "" {
		return creds.OpenVault(path, []byte(key))
	}
	v, err := creds.OpenVault(path, nil)
	if !errors.Is(err, creds.ErrDecrypt) {
		return v, err
	}
	password, err := readSecret("Master password: ")
	if err != nil {
		return nil, err
	}
	return creds.OpenVault(path, password)
}

func mustOpenVault() *creds.Vault {
	v, err := OpenVault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening credential vault: %v\n", err)
		os.Exit(1)
	}
	return v
}

func readSecret(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return secret, nil
}

func credsList() {
	summaries, err := mustOpenVault().List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing credentials: %v\n", err)
		os.Exit(1)
	}

	if len(summaries) == 0 {
		fmt.Println("No credentials configured.")
		return
	}

	for _, s := range summaries {
		line := fmt.Sprintf("%-20s  version=%s", s.Name, s.Version)
		if s.Username != "" {
			line += "  user=" + s.Username
		}
		if s.AuthProto != "" {
			line += "  auth=" + s.AuthProto
		}
		if s.PrivProto != "" {
			line += "  priv=" + s.PrivProto
		}
		fmt.Println(line)
	}
}

func credsAdd() {
	reader := bufio.NewReader(os.Stdin)
	ask := func(prompt string) string {
		fmt.Print(prompt)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}
	secret := func(prompt string) string {
		b, err := readSecret(prompt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return string(b)
	}

	c := creds.Credential{
		Name:    ask("Credential name: "),
		Version: ask("SNMP version (1, 2c, 3): "),
	}

	switch c.Version {
	case "1", "2c":
		c.Community = ask("Community string: ")
	case "3":
		c.Username = ask("Username: ")
		if auth := ask("Auth protocol (none, MD5, SHA, SHA256, SHA512): "); auth != "" && auth != "none" {
			c.AuthProto = strings.ToUpper(auth)
			c.AuthPass = secret("Auth password: ")
			if priv := ask("Privacy protocol (none, DES, AES128, AES192, AES256): "); priv != "" && priv != "none" {
				c.PrivProto = strings.ToUpper(priv)
				c.PrivPass = secret("Privacy password: ")
			}
		}
	}

	if err := c.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := mustOpenVault().Add(c); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding credential: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Credential %q added.\n", c.Name)
}

func credsRemove(name string) {
	if err := mustOpenVault().Remove(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing credential: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Credential %q removed.\n", name)
}

// splitTarget parses HOST or HOST:PORT, defaulting to the SNMP port.
func splitTarget(arg string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(arg)
	if err != nil {
		// no port given
		return strings.Trim(arg, "[]"), dashboard.DefaultPort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port %q", portStr)
	}
	return host, port, nil
}

func credsTest(name, target string) {
	host, port, err := splitTarget(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	c, err := mustOpenVault().Get(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Testing SNMP connectivity to %s:%d using credential %q...\n", host, port, name)

	src, err := engine.NewSNMPSource(host, port, c, 10*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	descr, err := src.SysDescr()
	if err != nil {
		fmt.Fprintf(os.Stderr, "SNMP GET failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("sysDescr: %s\n", descr)
	fmt.Println("Connection test successful.")
}
