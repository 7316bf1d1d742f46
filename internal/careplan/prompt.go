package careplan

import (
	"fmt"
	"strings"

	"github.com/lamar-health/care-plan-service/internal/records"
)

// SystemPrompt is the fixed instruction set given to the generation
// service. It pins the output structure and the plain-text-only
// formatting constraint.
const SystemPrompt = `You are an expert specialty pharmacist creating comprehensive care plans for patients requiring specialty medications.

Your care plans must be:
- Clinically accurate and evidence-based
- Clear and actionable for pharmacy staff and infusion centers
- Focused on patient safety, medication management, and monitoring
- Detailed with specific dosing calculations, monitoring parameters, and intervention protocols

IMPORTANT: Use plain text formatting only. Do NOT use markdown formatting (no **, no #, no formatting symbols).

Format your care plan with these sections:

1. Problem list / Drug therapy problems (DTPs)
   - List all relevant drug therapy problems including efficacy needs, safety risks, drug interactions, and patient education gaps
   - Number each problem clearly

2. Goals (SMART)
   - Primary clinical goal (efficacy)
   - Safety goals (specific adverse events to prevent)
   - Process goals (completion of therapy, monitoring documentation)

3. Pharmacist interventions / plan
   - Dosing & Administration (with calculations)
   - Premedication protocols
   - Infusion rates & titration protocols
   - Hydration & organ protection strategies
   - Risk mitigation for specific adverse events
   - Concomitant medication management
   - Monitoring during administration (with frequencies)
   - Adverse event management protocols (mild/moderate/severe)
   - Documentation & communication requirements

4. Monitoring plan & lab schedule
   - Pre-treatment baseline assessments
   - During-treatment monitoring (vitals, labs, symptoms)
   - Post-treatment follow-up timing and parameters

Write in a professional, clinical tone. Be specific about:
- Exact doses with calculations (e.g., "2.0 g/kg total for 72 kg = 144 g")
- Vital sign monitoring frequencies (e.g., "q15 min for first hour")
- Lab monitoring timing (e.g., "within 3-7 days post-completion")
- Specific adverse event protocols with escalation criteria

Use clinical abbreviations appropriately (e.g., PO, q6h, SCr, eGFR, FVC).`

// BuildPrompt assembles the user prompt from an order's fields. The
// optional additional-diagnoses and medication-history lines appear only
// when those fields are non-empty; the patient records narrative is
// always appended verbatim. The same order always yields the same prompt.
func BuildPrompt(order *records.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Please generate a comprehensive pharmacist care plan for the following patient.

PATIENT & PROVIDER INFORMATION:
- Patient: %s %s
- MRN: %s
- Ordering Provider: %s (NPI: %s)
- Primary Diagnosis: %s
- Medication Prescribed: %s`,
		order.Patient.FirstName, order.Patient.LastName,
		order.Patient.MRN,
		order.Provider.Name, order.Provider.NPI,
		order.PrimaryDiagnosis,
		order.MedicationName,
	)

	if order.AdditionalDiagnoses != "" {
		fmt.Fprintf(&b, "\n- Additional Diagnoses: %s", order.AdditionalDiagnoses)
	}
	if order.MedicationHistory != "" {
		fmt.Fprintf(&b, "\n- Medication History: %s", order.MedicationHistory)
	}

	fmt.Fprintf(&b, `

DETAILED PATIENT MEDICAL RECORDS:
%s

---

Based on the patient medical records above, generate a complete pharmacist care plan following the format specified in your instructions. Focus on:
- Identifying all drug therapy problems relevant to this patient and medication
- Creating specific, measurable goals
- Providing detailed, actionable interventions with exact dosing calculations and monitoring frequencies
- Establishing a comprehensive monitoring schedule with specific timing

The patient medical records contain the most important clinical context - use them as your primary source for clinical decision-making.`,
		order.PatientRecords,
	)

	return b.String()
}
