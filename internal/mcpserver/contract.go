package mcpserver

// FormRulesContract explains to LLM clients how the editable table's form
// behaves, so tool calls can be sequenced correctly.
const FormRulesContract = `# crewboard form rules

The table is edited through a single draft form.

## Fields

| name        | rule                                             |
|-------------|--------------------------------------------------|
| displayName | free text                                        |
| role        | free text                                        |
| projectName | free text                                        |
| status      | one of Active, Pending, Completed (default Active) |
| budget      | required, plain decimal number: 10, 3.9, -4, .5  |

Budgets such as "3.9K", "1e3" or "$10" are rejected.

## Adding a record

1. set_field for each field.
2. commit_draft. A blocked commit leaves the draft as it was and lists the
   field errors; fix them with set_field and commit again.

## Editing a record

1. begin_edit with the record id. The draft is filled from the record.
2. set_field for the fields to change.
3. commit_draft replaces the record in place; its id never changes.

## Deleting a record

Deletion is two-step: request_delete returns a token, confirm_delete with
that token removes the record. Tokens are single use.

## Sorting

sort_records orders by display name and flips between ascending and
descending on every call, starting with ascending.
`
