package main

import (
	"bytes"
	"testing"
)

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	if root.Use != "dokuctl" {
		t.Errorf("Use = %q, want dokuctl", root.Use)
	}

	want := map[string]bool{
		"version": false,
		"page":    false,
		"media":   false,
		"acl":     false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommand_Help(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})

	if err := root.Execute(); err != nil {
		t.Fatalf("help should not fail: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("dokuctl")) {
		t.Error("help output should mention the command name")
	}
}

func TestPageCommand_Subcommands(t *testing.T) {
	page := newPageCmd()

	want := map[string]bool{
		"get":    false,
		"put":    false,
		"list":   false,
		"search": false,
		"delete": false,
	}
	for _, cmd := range page.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing page subcommand %q", name)
		}
	}
}
