package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sessionName       string
	sessionPolicy     string
	sessionFilter     string
	sessionRoute      string
	sessionLifespan   string
	sessionDescr      string
	sessionExportPath string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage sessions",
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a session",
	RunE:  runSessionCreate,
}

var sessionGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print one session",
	RunE:  runSessionGet,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every session name",
	RunE:  runSessionList,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a session",
	RunE:  runSessionDelete,
}

var sessionDeleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every session",
	RunE:  runSessionDeleteAll,
}

func init() {
	sessionCreateCmd.Flags().StringVar(&sessionName, "name", "", "session name (required)")
	sessionCreateCmd.Flags().StringVar(&sessionPolicy, "policy", "", "policy name (required)")
	sessionCreateCmd.Flags().StringVar(&sessionFilter, "filter", "", "filter name (required)")
	sessionCreateCmd.Flags().StringVar(&sessionRoute, "route", "", "route name (required)")
	sessionCreateCmd.Flags().StringVar(&sessionLifespan, "lifespan", "", "session lifespan, e.g. 1h (empty = unbounded)")
	sessionCreateCmd.Flags().StringVar(&sessionDescr, "description", "", "free-form description")
	sessionCreateCmd.MarkFlagRequired("name")
	sessionCreateCmd.MarkFlagRequired("policy")
	sessionCreateCmd.MarkFlagRequired("filter")
	sessionCreateCmd.MarkFlagRequired("route")

	sessionGetCmd.Flags().StringVar(&sessionName, "name", "", "session name (required)")
	sessionGetCmd.MarkFlagRequired("name")

	sessionListCmd.Flags().StringVar(&sessionExportPath, "export", "", "also write the session list to this .xlsx path")

	sessionDeleteCmd.Flags().StringVar(&sessionName, "name", "", "session name (required)")
	sessionDeleteCmd.MarkFlagRequired("name")

	sessionCmd.AddCommand(sessionCreateCmd, sessionGetCmd, sessionListCmd, sessionDeleteCmd, sessionDeleteAllCmd)
}

func runSessionCreate(cmd *cobra.Command, args []string) error {
	fields := map[string]any{
		"session_name": sessionName,
		"policy_name":  sessionPolicy,
		"filter_name":  sessionFilter,
		"route_name":   sessionRoute,
		"description":  sessionDescr,
	}
	if sessionLifespan != "" {
		fields["lifespan"] = sessionLifespan
	}

	resp, err := dispatch(serverAddr, "session_create", fields)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runSessionGet(cmd *cobra.Command, args []string) error {
	resp, err := dispatch(serverAddr, "session_get", map[string]any{"session_name": sessionName})
	if err != nil {
		return err
	}
	if resp.Data == nil {
		fmt.Println(resp.Message)
		return nil
	}
	raw, _ := marshalIndent(resp.Data)
	fmt.Println(string(raw))
	return nil
}

func runSessionList(cmd *cobra.Command, args []string) error {
	resp, err := dispatch(serverAddr, "session_list", nil)
	if err != nil {
		return err
	}
	printSessionList(resp.Data)

	if sessionExportPath != "" {
		if err := exportSessionList(sessionExportPath, resp.Data); err != nil {
			return fmt.Errorf("export session list: %w", err)
		}
		fmt.Printf("Exported session list to %s\n", sessionExportPath)
	}
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	resp, err := dispatch(serverAddr, "session_delete", map[string]any{"session_name": sessionName})
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runSessionDeleteAll(cmd *cobra.Command, args []string) error {
	resp, err := dispatch(serverAddr, "session_delete_all", nil)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}
