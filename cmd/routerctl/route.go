package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	routeName     string
	routePriority int
	routeTarget   string
	exportPath    string
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Manage the route table",
}

var routeSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Add a route",
	RunE:  runRouteSet,
}

var routeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the route table, ordered ascending by priority",
	RunE:  runRouteGet,
}

var routeDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a route",
	RunE:  runRouteDelete,
}

var routeReprioritizeCmd = &cobra.Command{
	Use:   "reprioritize",
	Short: "Change a route's priority",
	RunE:  runRouteReprioritize,
}

func init() {
	routeSetCmd.Flags().StringVar(&routeName, "name", "", "route name (required)")
	routeSetCmd.Flags().IntVar(&routePriority, "priority", 0, "dispatch priority, lower dispatches first (required)")
	routeSetCmd.Flags().StringVar(&routeTarget, "target", "", "target environment name (required)")
	routeSetCmd.MarkFlagRequired("name")
	routeSetCmd.MarkFlagRequired("priority")
	routeSetCmd.MarkFlagRequired("target")

	routeGetCmd.Flags().StringVar(&exportPath, "export", "", "also write the route table to this .xlsx path")

	routeDeleteCmd.Flags().StringVar(&routeName, "name", "", "route name (required)")
	routeDeleteCmd.MarkFlagRequired("name")

	routeReprioritizeCmd.Flags().StringVar(&routeName, "name", "", "route name (required)")
	routeReprioritizeCmd.Flags().IntVar(&routePriority, "priority", 0, "new priority (required)")
	routeReprioritizeCmd.MarkFlagRequired("name")
	routeReprioritizeCmd.MarkFlagRequired("priority")

	routeCmd.AddCommand(routeSetCmd, routeGetCmd, routeDeleteCmd, routeReprioritizeCmd)
}

func runRouteSet(cmd *cobra.Command, args []string) error {
	resp, err := dispatch(serverAddr, "set", map[string]any{
		"name": routeName, "priority": routePriority, "target": routeTarget,
	})
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runRouteGet(cmd *cobra.Command, args []string) error {
	resp, err := dispatch(serverAddr, "get", nil)
	if err != nil {
		return err
	}
	routes, err := decodeRoutes(resp.Data)
	if err != nil {
		return fmt.Errorf("decode route table: %w", err)
	}

	printRouteTable(routes)

	if exportPath != "" {
		if err := exportRouteTable(exportPath, routes); err != nil {
			return fmt.Errorf("export route table: %w", err)
		}
		fmt.Printf("Exported %d routes to %s\n", len(routes), exportPath)
	}
	return nil
}

func runRouteDelete(cmd *cobra.Command, args []string) error {
	resp, err := dispatch(serverAddr, "delete", map[string]any{"name": routeName})
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runRouteReprioritize(cmd *cobra.Command, args []string) error {
	resp, err := dispatch(serverAddr, "change_priority", map[string]any{
		"name": routeName, "priority": routePriority,
	})
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}
