package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gosepa-cli",
		Short: "SEPA payment batch CLI tool",
		Long:  `A command line interface for assembling SEPA payment batches and downloading pain documents.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(batchCommand())
	rootCmd.AddCommand(transferCommand())
	rootCmd.AddCommand(documentCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func batchCommand() *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Batch operations",
	}

	var (
		batchType       string
		originName      string
		originIBAN      string
		originBIC       string
		currency        string
		dueDate         string
		creditorID      string
		sequenceType    string
		localInstrument string
		serviceLevel    string
		priority        string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a payment batch",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"type":        batchType,
				"origin_name": originName,
				"origin_iban": originIBAN,
				"origin_bic":  originBIC,
			}
			setIfNotEmpty(payload, "currency", currency)
			setIfNotEmpty(payload, "due_date", dueDate)
			setIfNotEmpty(payload, "creditor_id", creditorID)
			setIfNotEmpty(payload, "sequence_type", sequenceType)
			setIfNotEmpty(payload, "local_instrument", localInstrument)
			setIfNotEmpty(payload, "service_level", serviceLevel)
			setIfNotEmpty(payload, "instruction_priority", priority)

			postJSON("/api/v1/batches", payload)
		},
	}

	createCmd.Flags().StringVar(&batchType, "type", "credit_transfer", "Batch type (credit_transfer or direct_debit)")
	createCmd.Flags().StringVar(&originName, "origin-name", "", "Origin party name")
	createCmd.Flags().StringVar(&originIBAN, "origin-iban", "", "Origin account IBAN")
	createCmd.Flags().StringVar(&originBIC, "origin-bic", "", "Origin bank BIC")
	createCmd.Flags().StringVar(&currency, "currency", "", "Currency (defaults to EUR)")
	createCmd.Flags().StringVar(&dueDate, "due-date", "", "Due date (YYYY-MM-DD)")
	createCmd.Flags().StringVar(&creditorID, "creditor-id", "", "SEPA creditor identifier (direct debit)")
	createCmd.Flags().StringVar(&sequenceType, "sequence-type", "", "Sequence type (FRST, RCUR, OOFF, FNAL)")
	createCmd.Flags().StringVar(&localInstrument, "local-instrument", "", "Local instrument code (CORE, B2B, ...)")
	createCmd.Flags().StringVar(&serviceLevel, "service-level", "", "Service level (SEPA, NURG)")
	createCmd.Flags().StringVar(&priority, "priority", "", "Instruction priority (NORM, HIGH)")
	createCmd.MarkFlagRequired("origin-name")
	createCmd.MarkFlagRequired("origin-iban")
	createCmd.MarkFlagRequired("origin-bic")

	getCmd := &cobra.Command{
		Use:   "get <batch-id>",
		Short: "Show a batch",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/batches/" + args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List batches",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/batches")
		},
	}

	batchCmd.AddCommand(createCmd)
	batchCmd.AddCommand(getCmd)
	batchCmd.AddCommand(listCmd)

	return batchCmd
}

func transferCommand() *cobra.Command {
	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer operations",
	}

	var (
		amount          string
		name            string
		iban            string
		bic             string
		endToEndID      string
		remittance      string
		mandateID       string
		mandateSignDate string
	)

	addCmd := &cobra.Command{
		Use:   "add <batch-id>",
		Short: "Append a transfer to a batch",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			transfer := map[string]any{
				"amount":            amount,
				"counterparty_name": name,
				"counterparty_iban": iban,
				"counterparty_bic":  bic,
			}
			setIfNotEmpty(transfer, "end_to_end_id", endToEndID)
			setIfNotEmpty(transfer, "remittance_information", remittance)
			setIfNotEmpty(transfer, "mandate_id", mandateID)
			setIfNotEmpty(transfer, "mandate_sign_date", mandateSignDate)

			postJSON("/api/v1/batches/"+args[0]+"/transfers", map[string]any{
				"transfers": []map[string]any{transfer},
			})
		},
	}

	addCmd.Flags().StringVar(&amount, "amount", "", "Amount in major units, e.g. 12.50")
	addCmd.Flags().StringVar(&name, "name", "", "Counterparty name")
	addCmd.Flags().StringVar(&iban, "iban", "", "Counterparty IBAN")
	addCmd.Flags().StringVar(&bic, "bic", "", "Counterparty BIC")
	addCmd.Flags().StringVar(&endToEndID, "end-to-end", "", "End-to-end identifier")
	addCmd.Flags().StringVar(&remittance, "remittance", "", "Unstructured remittance information")
	addCmd.Flags().StringVar(&mandateID, "mandate-id", "", "Mandate identifier (direct debit)")
	addCmd.Flags().StringVar(&mandateSignDate, "mandate-sign-date", "", "Mandate signature date (YYYY-MM-DD)")
	addCmd.MarkFlagRequired("amount")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("iban")
	addCmd.MarkFlagRequired("bic")

	listCmd := &cobra.Command{
		Use:   "list <batch-id>",
		Short: "List the transfers of a batch",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/batches/" + args[0] + "/transfers")
		},
	}

	transferCmd.AddCommand(addCmd)
	transferCmd.AddCommand(listCmd)

	return transferCmd
}

func documentCommand() *cobra.Command {
	documentCmd := &cobra.Command{
		Use:   "document",
		Short: "Document operations",
	}

	generateCmd := &cobra.Command{
		Use:   "generate <batch-id>",
		Short: "Generate the pain document for a batch",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/batches/"+args[0]+"/document", nil)
		},
	}

	var outPath string

	downloadCmd := &cobra.Command{
		Use:   "download <batch-id>",
		Short: "Download the generated XML",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			downloadDocument(args[0], outPath)
		},
	}

	downloadCmd.Flags().StringVar(&outPath, "out", "", "Output file (defaults to stdout)")

	documentCmd.AddCommand(generateCmd)
	documentCmd.AddCommand(downloadCmd)

	return documentCmd
}

func setIfNotEmpty(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func postJSON(path string, payload any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", body)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(data))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Println(pretty.String())
}

func downloadDocument(batchID, outPath string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/batches/" + batchID + "/document/download")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(data))
		os.Exit(1)
	}

	if outPath == "" {
		fmt.Println(string(data))
		return
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		fmt.Printf("Failed to write %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d bytes to %s\n", len(data), outPath)
}
