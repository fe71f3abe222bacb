package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EdwardJoke/egit/internal/registry"
)

func newReleasesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "releases <owner/repo>",
		Short: "List releases for a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := registry.ParseRef(args[0])
			releases, err := a.registry.ListReleases(cmd.Context(), ref.Owner, ref.Repo)
			if err != nil {
				return fmt.Errorf("fetch releases: %w", err)
			}

			fmt.Println("=== Releases ===")
			for _, rel := range releases {
				fmt.Printf("- %s\n", rel)
			}
			fmt.Printf("=== Total: %d releases ===\n", len(releases))
			return nil
		},
	}
}

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags <owner/repo>",
		Short: "List tags for a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := registry.ParseRef(args[0])
			tags, err := a.registry.ListTags(cmd.Context(), ref.Owner, ref.Repo)
			if err != nil {
				return fmt.Errorf("fetch tags: %w", err)
			}

			fmt.Println("=== Tags ===")
			for _, tag := range tags {
				fmt.Printf("- %s\n", tag)
			}
			fmt.Printf("=== Total: %d tags ===\n", len(tags))
			return nil
		},
	}
}

func newAssetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assets <owner/repo[@version]>",
		Short: "List assets of a release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := registry.ParseRef(args[0])
			releases, err := a.registry.ListReleases(cmd.Context(), ref.Owner, ref.Repo)
			if err != nil {
				return fmt.Errorf("fetch releases: %w", err)
			}

			rel, err := registry.Resolve(releases, ref.Version)
			if err != nil {
				return err
			}

			fmt.Printf("=== Assets for Release '%s' ===\n", rel.TagName)
			if len(rel.Assets) == 0 {
				fmt.Println("- No assets found for this release")
			} else {
				for _, asset := range rel.Assets {
					fmt.Println(asset)
				}
			}
			fmt.Printf("=== Total: %d assets ===\n", len(rel.Assets))
			return nil
		},
	}
}
