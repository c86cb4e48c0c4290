package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietdv277/cirrus/internal/ui"
	"github.com/vietdv277/cirrus/pkg/provider"
	"github.com/vietdv277/cirrus/pkg/types"
)

var imageCmd = &cobra.Command{
	Use:     "image",
	Aliases: []string{"images"},
	Short:   "Manage VM images",
	Long: `Manage VM images.

Upload, lookup, listing and deletion use the cluster tool. Capturing an
image from a VM and listing image tasks use the API.

Examples:
  crs image create ./ubuntu.vmdk -n ubuntu -r ON_DEMAND
  crs image list
  crs image show <id>
  crs image show -i              # Pick an image interactively
  crs image delete -i
  crs image create-from-vm <vm-id> -n snapshot-01
  crs image tasks <id> --state ERROR`,
}

var imageCreateCmd = &cobra.Command{
	Use:   "create <path>",
	Short: "Upload an image",
	Long: `Upload an image file. A random name is generated when --name is omitted.

Examples:
  crs image create ./ubuntu.vmdk
  crs image create ./ubuntu.vmdk -n ubuntu -r EAGER`,
	Args: cobra.ExactArgs(1),
	RunE: runImageCreate,
}

var imageShowCmd = &cobra.Command{
	Use:     "show [id]",
	Aliases: []string{"get"},
	Short:   "Show image details",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runImageShow,
}

var imageListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List images",
	RunE:    runImageList,
}

var imageDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete an image",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runImageDelete,
}

var imageCreateFromVMCmd = &cobra.Command{
	Use:   "create-from-vm <vm-id>",
	Short: "Capture an image from a VM",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageCreateFromVM,
}

var imageTasksCmd = &cobra.Command{
	Use:   "tasks <id>",
	Short: "List the tasks of an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageTasks,
}

var (
	imageName        string
	imageReplication string
	imageInteractive bool
	imageTaskState   string
)

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageCreateCmd)
	imageCmd.AddCommand(imageShowCmd)
	imageCmd.AddCommand(imageListCmd)
	imageCmd.AddCommand(imageDeleteCmd)
	imageCmd.AddCommand(imageCreateFromVMCmd)
	imageCmd.AddCommand(imageTasksCmd)

	for _, c := range []*cobra.Command{imageCreateCmd, imageCreateFromVMCmd} {
		c.Flags().StringVarP(&imageName, "name", "n", "", "Image name")
		c.Flags().StringVarP(&imageReplication, "replication", "r", "", "Replication type, e.g. EAGER or ON_DEMAND")
	}
	for _, c := range []*cobra.Command{imageShowCmd, imageDeleteCmd} {
		c.Flags().BoolVarP(&imageInteractive, "interactive", "i", false, "Select the image interactively")
	}
	imageTasksCmd.Flags().StringVarP(&imageTaskState, "state", "s", "", "Only tasks in this state")
}

func runImageCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	b, err := newBackend(ctx)
	if err != nil {
		return err
	}

	img, err := b.images.Create(ctx, args[0], &provider.ImageCreateOptions{
		Name:        imageName,
		Replication: imageReplication,
	})
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return printOutput(img, func() { ui.RenderImage(os.Stdout, img) })
}

// pickImage returns the image named by args, or lets the user select one
func pickImage(cmd *cobra.Command, b *backend, args []string) (*types.Image, error) {
	ctx := cmd.Context()
	if len(args) == 1 {
		img, err := b.images.Get(ctx, args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to get image: %w", err)
		}
		return img, nil
	}
	if !imageInteractive {
		return nil, fmt.Errorf("image id required (or use -i to select one)")
	}

	images, err := b.images.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return ui.SelectImage(images)
}

func runImageShow(cmd *cobra.Command, args []string) error {
	b, err := newBackend(cmd.Context())
	if err != nil {
		return err
	}
	img, err := pickImage(cmd, b, args)
	if err != nil {
		return err
	}
	return printOutput(img, func() { ui.RenderImage(os.Stdout, img) })
}

func runImageList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	b, err := newBackend(ctx)
	if err != nil {
		return err
	}

	images, err := b.images.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list images: %w", err)
	}
	if len(images) == 0 && (settings.Output == "" || settings.Output == "table") {
		fmt.Println("No images found")
		return nil
	}
	return printOutput(images, func() { ui.RenderImages(os.Stdout, images) })
}

func runImageDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	b, err := newBackend(ctx)
	if err != nil {
		return err
	}

	id := ""
	if len(args) == 1 {
		id = args[0]
	} else {
		img, err := pickImage(cmd, b, args)
		if err != nil {
			return err
		}
		id = img.GetID()
	}

	if _, err := b.images.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	fmt.Printf("Image deleted: %s\n", ui.IDStyle.Render(id))
	return nil
}

func runImageCreateFromVM(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	b, err := newBackend(ctx)
	if err != nil {
		return err
	}

	name := imageName
	if name == "" {
		name = types.RandomName("image-")
	}
	img, err := b.images.CreateFromVM(ctx, args[0], &types.ImageCreateFromVMSpec{
		Name:            name,
		ReplicationType: imageReplication,
	})
	if err != nil {
		return fmt.Errorf("failed to create image from vm: %w", err)
	}
	return printOutput(img, func() { ui.RenderImage(os.Stdout, img) })
}

func runImageTasks(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	b, err := newBackend(ctx)
	if err != nil {
		return err
	}

	tasks, err := b.images.Tasks(ctx, args[0], imageTaskState)
	if err != nil {
		return fmt.Errorf("failed to list image tasks: %w", err)
	}
	return printOutput(tasks, func() { ui.RenderTasks(os.Stdout, tasks) })
}
