package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arslanca/portfolio-web/internal/api"
)

var (
	adminAuth string

	blogTitle string
	blogFile  string

	pinTitle       string
	pinDescription string
	pinTags        []string
	pinGithub      string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage blog posts and pinned projects",
	Long: `Admin commands forward the --auth value (or FOLIO_ADMIN_AUTH) as the
Authorization header, e.g. "Basic dXNlcjpwYXNz".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd, args); err != nil {
			return err
		}
		if adminAuth == "" {
			adminAuth = os.Getenv("FOLIO_ADMIN_AUTH")
		}
		return nil
	},
}

var adminVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the admin credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient(cmd).VerifyAdmin(cmd.Context(), adminAuth); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Credentials accepted.")
		return nil
	},
}

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Publish, edit or delete blog posts",
}

var blogAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Publish a post",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := blogRequest(cmd.InOrStdin())
		if err != nil {
			return err
		}
		if err := newClient(cmd).AddBlog(cmd.Context(), req, adminAuth); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published %q\n", req.Title)
		return nil
	},
}

var blogUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a post's title and content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid post id %q", args[0])
		}
		req, err := blogRequest(cmd.InOrStdin())
		if err != nil {
			return err
		}
		if err := newClient(cmd).UpdateBlog(cmd.Context(), id, req, adminAuth); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated post %d\n", id)
		return nil
	},
}

var blogDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid post id %q", args[0])
		}
		if err := newClient(cmd).DeleteBlog(cmd.Context(), id, adminAuth); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted post %d\n", id)
		return nil
	},
}

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Manage pinned projects",
}

var pinAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Pin a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := pinRequest()
		if err := newClient(cmd).AddPinnedProject(cmd.Context(), req, adminAuth); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pinned %q\n", req.Title)
		return nil
	},
}

var pinUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a pinned project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}
		if err := newClient(cmd).UpdatePinnedProject(cmd.Context(), id, pinRequest(), adminAuth); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated pinned project %d\n", id)
		return nil
	},
}

var pinDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Unpin a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}
		if err := newClient(cmd).DeletePinnedProject(cmd.Context(), id, adminAuth); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Unpinned project %d\n", id)
		return nil
	},
}

func init() {
	adminCmd.PersistentFlags().StringVar(&adminAuth, "auth", "", "Authorization header value (default $FOLIO_ADMIN_AUTH)")

	for _, c := range []*cobra.Command{blogAddCmd, blogUpdateCmd} {
		c.Flags().StringVar(&blogTitle, "title", "", "Post title")
		c.Flags().StringVar(&blogFile, "file", "-", "File with the post content, - for stdin")
		c.MarkFlagRequired("title")
	}
	for _, c := range []*cobra.Command{pinAddCmd, pinUpdateCmd} {
		c.Flags().StringVar(&pinTitle, "title", "", "Project title")
		c.Flags().StringVar(&pinDescription, "description", "", "Project description")
		c.Flags().StringSliceVar(&pinTags, "tag", nil, "Tag (repeatable)")
		c.Flags().StringVar(&pinGithub, "github", "", "Repository URL")
	}

	blogCmd.AddCommand(blogAddCmd, blogUpdateCmd, blogDeleteCmd)
	pinCmd.AddCommand(pinAddCmd, pinUpdateCmd, pinDeleteCmd)
	adminCmd.AddCommand(adminVerifyCmd, blogCmd, pinCmd)
}

func blogRequest(stdin io.Reader) (api.BlogRequest, error) {
	var content []byte
	var err error
	if blogFile == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(blogFile)
	}
	if err != nil {
		return api.BlogRequest{}, fmt.Errorf("reading post content: %w", err)
	}
	if len(content) == 0 {
		return api.BlogRequest{}, errors.New("post content is empty")
	}
	return api.BlogRequest{Title: blogTitle, Content: string(content)}, nil
}

func pinRequest() api.PinnedProjectRequest {
	return api.PinnedProjectRequest{
		Title:       pinTitle,
		Description: pinDescription,
		Tags:        pinTags,
		GithubURL:   pinGithub,
	}
}
