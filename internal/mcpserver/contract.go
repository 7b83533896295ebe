package mcpserver

// Rules describes how the phonebook reconciles submitted contacts. It is
// served as the phonebook://rules resource.
const Rules = `# Phonebook Rules

Contacts have a name and a number. Leading and trailing whitespace is
dropped from both; names are then matched exactly, so case matters. The
list filter is case-insensitive.

## add_contact

1. **New name.** The contact is created and the result reads ` + "`Added '<name>'`" + `.
2. **Known name, same number.** Nothing is sent to the directory; the
   result reads ` + "`<name> already added to phonebook`" + `.
3. **Known name, other number.** The number is replaced only when
   ` + "`replace`" + ` is true. The result reads ` + "`Updated number for <name>`" + `.
   Without ` + "`replace`" + ` the directory is left unchanged.
4. If the contact was removed on the server in the meantime, the result
   reads ` + "`Information of <name> has already been removed from server`" + `.

Name and number are both required.

## delete_contact

Deletes the contact with exactly that name, and only when ` + "`confirm`" + `
is true.

## list_contacts

Returns the directory in server order as JSON. ` + "`filter`" + ` keeps names
containing the fragment, ignoring case.
`
