package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agentic-research/structree/internal/control"
	"github.com/agentic-research/structree/internal/editor"
	"github.com/agentic-research/structree/internal/nfsmount"
	"github.com/agentic-research/structree/internal/tree"
)

var (
	serveListen   string
	serveReadOnly bool
)

var serveCmd = &cobra.Command{
	Use:   "serve <structure.json> [mountpoint]",
	Short: "Serve a structure document over NFS",
	Long: `Serve starts an NFS server over the live structure. Directories are the
structure's folders and files are bare names. With a mountpoint argument
the export is mounted via the system mount command. Unless --read-only
is set, filesystem operations (mkdir, touch, rm, mv) commit through the
mutation engine and are written back to the document.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		docPath := args[0]
		root, err := loadStructure(docPath)
		if err != nil {
			return err
		}

		var ctl *control.Controller
		if cfg.Control != "" {
			ctl, err = control.OpenOrCreate(cfg.Control)
			if err != nil {
				return err
			}
			defer func() { _ = ctl.Close() }() // safe to ignore
			if err := ctl.SetDocument(docPath); err != nil {
				return err
			}
		}

		ed := editor.New(func(r *tree.DirectoryNode) {
			if ctl != nil {
				ctl.Bump()
			}
			if cfg.Autosave {
				if err := saveStructure(docPath, r); err != nil {
					log.Printf("autosave %s: %v", docPath, err)
				}
			}
		})
		ed.SetStructure(root)

		fsys := nfsmount.NewTreeFS(ed)
		fsys.SetWritable(!serveReadOnly)

		listen := serveListen
		if listen == "" {
			listen = cfg.Listen
		}
		srv, err := nfsmount.NewServer(fsys, listen)
		if err != nil {
			return err
		}
		defer func() { _ = srv.Close() }() // safe to ignore
		fmt.Printf("serving %s on NFS port %d\n", docPath, srv.Port())

		mounted := ""
		if len(args) == 2 {
			if err := nfsmount.Mount(srv.Port(), args[1], !serveReadOnly); err != nil {
				return err
			}
			mounted = args[1]
			fmt.Printf("mounted at %s\n", mounted)
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		if mounted != "" {
			if err := nfsmount.Unmount(mounted); err != nil {
				log.Printf("unmount %s: %v", mounted, err)
			}
		}
		// Final write-back so a non-autosave session still persists.
		return saveStructure(docPath, ed.Structure())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "NFS listen address (default ephemeral port)")
	serveCmd.Flags().BoolVar(&serveReadOnly, "read-only", false, "Reject mutations from the mount")
	rootCmd.AddCommand(serveCmd)
}
