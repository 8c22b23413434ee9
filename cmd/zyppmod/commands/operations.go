package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/zypperops/zyppmod/zyppmod/adapter"
)

func newGetPackageDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-package-data",
		Short: "Classify File= references as repo or file packages",
		Args:  cobra.NoArgs,
		RunE: runOp(func(ctx context.Context, a *adapter.Adapter, in io.Reader, out io.Writer) int {
			return a.GetPackageData(ctx, in, out)
		}),
	}
}

func newListInstalledCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-installed",
		Short: "Emit every installed package",
		Args:  cobra.NoArgs,
		RunE: runOp(func(ctx context.Context, a *adapter.Adapter, in io.Reader, out io.Writer) int {
			return a.ListInstalled(ctx, out)
		}),
	}
}

func newListUpdatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-updates",
		Short: "Refresh repositories and emit available updates",
		Args:  cobra.NoArgs,
		RunE: runOp(func(ctx context.Context, a *adapter.Adapter, in io.Reader, out io.Writer) int {
			return a.ListUpdates(ctx, out, true)
		}),
	}
}

func newListUpdatesLocalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-updates-local",
		Short: "Emit available updates from cached repository metadata",
		Args:  cobra.NoArgs,
		RunE: runOp(func(ctx context.Context, a *adapter.Adapter, in io.Reader, out io.Writer) int {
			return a.ListUpdates(ctx, out, false)
		}),
	}
}

func newRepoInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repo-install",
		Short: "Install or upgrade the requested packages from repositories",
		Args:  cobra.NoArgs,
		RunE: runOp(func(ctx context.Context, a *adapter.Adapter, in io.Reader, out io.Writer) int {
			return a.RepoInstall(ctx, in, out)
		}),
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the requested packages",
		Args:  cobra.NoArgs,
		RunE: runOp(func(ctx context.Context, a *adapter.Adapter, in io.Reader, out io.Writer) int {
			return a.Remove(ctx, in, out)
		}),
	}
}

func newFileInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "file-install",
		Short: "Install rpm files given as File= paths",
		Args:  cobra.NoArgs,
		RunE: runOp(func(ctx context.Context, a *adapter.Adapter, in io.Reader, out io.Writer) int {
			return a.FileInstall(ctx, in, out)
		}),
	}
}
